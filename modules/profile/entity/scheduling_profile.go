package entity

import (
	"time"

	"github.com/google/uuid"
)

// SchedulingProfile is a per-client scheduling configuration: the timezone,
// business hours and defaults applied when suggesting meeting times for that
// client's mailbox. Profiles are provisioned out of band and read-only here.
type SchedulingProfile struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Slug             string    `db:"slug" json:"slug"`
	Timezone         string    `db:"timezone" json:"timezone"`
	BusinessHours    string    `db:"business_hours" json:"business_hours"` // JSONB as string
	DurationMinutes  int       `db:"duration_minutes" json:"duration_minutes"`
	MaxSuggestions   int       `db:"max_suggestions" json:"max_suggestions"`
	PreferredTimes   string    `db:"preferred_times" json:"preferred_times"`
	OrganizerMailbox string    `db:"organizer_mailbox" json:"organizer_mailbox"`
	Active           bool      `db:"active" json:"active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
