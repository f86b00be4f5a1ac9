package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
)

// Timeouts
const (
	GraphRequestTimeout  = 10 * time.Second
	ShutdownGracePeriod  = 15 * time.Second
	FreeBusyFetchTimeout = 8 * time.Second
)

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Redis key prefixes
const (
	RedisKeyFreeBusy = "freebusy:"
)

// Cache TTLs
const (
	FreeBusyCacheTTL = 5 * time.Minute
)

// Scheduling defaults (applied at MeetingQuery construction)
const (
	DefaultSearchWindowDays = 14
	DefaultDurationMinutes  = 30
	DefaultMaxSuggestions   = 5
	SlotStepMinutes         = 30
	FallbackSlotHour        = 10
	FallbackConfidence      = 0.6
)

// Asynq task types and schedules
const (
	TaskTypeAvailabilityWarm   = "availability:warm"
	AvailabilityWarmCronSpec   = "*/15 * * * *"
	AvailabilityWarmWindowDays = 7
)
