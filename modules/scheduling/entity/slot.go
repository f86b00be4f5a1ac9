package entity

import "time"

// TimeSlot is a candidate meeting interval. Start is always before End; the
// Timezone is the caller-requested rendering zone, not a computed offset.
// Immutable once constructed.
type TimeSlot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone"`
}

// BusyInterval is one busy range from a participant's calendar. Read-only
// input sourced from the free/busy provider.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ScoredSlot is a ranked suggestion. Created fresh per query, never persisted.
type ScoredSlot struct {
	Slot          TimeSlot `json:"slot"`
	Confidence    float64  `json:"confidence"`
	Reason        string   `json:"reason"`
	FormattedTime string   `json:"formatted_time"`
}

// SchedulingWarning reports a non-fatal degradation (a participant whose
// calendar could not be read) alongside an otherwise usable result.
type SchedulingWarning struct {
	Participant string `json:"participant"`
	Message     string `json:"message"`
}

// SuggestionResult is the terminal output of a slot search: either ranked
// live suggestions (possibly degraded, see Warnings) or the fixed fallback
// set (Fallback=true).
type SuggestionResult struct {
	Slots    []ScoredSlot        `json:"slots"`
	Warnings []SchedulingWarning `json:"warnings,omitempty"`
	Fallback bool                `json:"fallback"`
}

// TimePreference narrows scoring toward a part of the day.
type TimePreference string

const (
	PreferenceMorning   TimePreference = "morning"
	PreferenceAfternoon TimePreference = "afternoon"
	PreferenceAny       TimePreference = "any"
)
