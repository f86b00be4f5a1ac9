package entity

import (
	"time"

	"slotfinder-api/core/constants"
)

// MeetingQuery is the request envelope for a slot search. Attendee, timezone
// and business hours come from the caller; everything else has defaults
// applied once in ApplyDefaults rather than scattered through the pipeline.
type MeetingQuery struct {
	AttendeeEmail    string
	OrganizerMailbox string
	Timezone         string
	BusinessHours    map[string]string
	StartDate        time.Time
	EndDate          time.Time
	DurationMinutes  int
	MaxSuggestions   int
	PreferredTimes   TimePreference
}

// ApplyDefaults fills zero-valued optional fields relative to now:
// window now..now+14d, 30 minute duration, 5 suggestions, "any" preference.
func (q *MeetingQuery) ApplyDefaults(now time.Time) {
	if q.StartDate.IsZero() {
		q.StartDate = now
	}
	if q.EndDate.IsZero() {
		q.EndDate = q.StartDate.AddDate(0, 0, constants.DefaultSearchWindowDays)
	}
	if q.DurationMinutes == 0 {
		q.DurationMinutes = constants.DefaultDurationMinutes
	}
	if q.MaxSuggestions == 0 {
		q.MaxSuggestions = constants.DefaultMaxSuggestions
	}
	if q.PreferredTimes == "" {
		q.PreferredTimes = PreferenceAny
	}
}

// Participants lists the calendars consulted for this query: the external
// attendee plus, when known, the organizer's own mailbox.
func (q *MeetingQuery) Participants() []string {
	participants := []string{q.AttendeeEmail}
	if q.OrganizerMailbox != "" {
		participants = append(participants, q.OrganizerMailbox)
	}
	return participants
}
