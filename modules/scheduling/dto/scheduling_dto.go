package dto

import (
	"time"

	"slotfinder-api/modules/scheduling/entity"
)

// ===================== Request DTOs =====================

// SuggestRequest asks for ranked meeting time suggestions with inline
// configuration.
type SuggestRequest struct {
	AttendeeEmail    string            `json:"attendee_email" validate:"required,email"`
	OrganizerMailbox string            `json:"organizer_mailbox"`
	Timezone         string            `json:"timezone" validate:"required"`
	BusinessHours    map[string]string `json:"business_hours"`
	StartDate        string            `json:"start_date"` // RFC3339 or YYYY-MM-DD
	EndDate          string            `json:"end_date"`   // RFC3339 or YYYY-MM-DD
	DurationMinutes  int               `json:"duration_minutes"`
	MaxSuggestions   int               `json:"max_suggestions"`
	PreferredTimes   string            `json:"preferred_times"` // morning | afternoon | any
}

// ProfileSuggestRequest asks for suggestions using a stored scheduling
// profile for everything except the attendee and the search window.
type ProfileSuggestRequest struct {
	AttendeeEmail string `json:"attendee_email" validate:"required,email"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

// ===================== Response DTOs =====================

// ScoredSlotDTO is one ranked suggestion
type ScoredSlotDTO struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Timezone      string    `json:"timezone"`
	Confidence    float64   `json:"confidence"`
	Reason        string    `json:"reason"`
	FormattedTime string    `json:"formatted_time"`
}

// WarningDTO reports a degraded (but non-fatal) part of the search
type WarningDTO struct {
	Participant string `json:"participant"`
	Message     string `json:"message"`
}

// SuggestResponse carries the ranked slots; Warnings flag degradation and
// Fallback marks the fixed default set, without changing the slot shape.
type SuggestResponse struct {
	Slots    []ScoredSlotDTO `json:"slots"`
	Warnings []WarningDTO    `json:"warnings,omitempty"`
	Fallback bool            `json:"fallback"`
}

// ===================== Mapper Functions =====================

// ToSuggestResponse maps a suggestion result to its DTO
func ToSuggestResponse(result *entity.SuggestionResult) *SuggestResponse {
	resp := &SuggestResponse{
		Slots:    make([]ScoredSlotDTO, 0, len(result.Slots)),
		Fallback: result.Fallback,
	}

	for _, s := range result.Slots {
		resp.Slots = append(resp.Slots, ScoredSlotDTO{
			Start:         s.Slot.Start,
			End:           s.Slot.End,
			Timezone:      s.Slot.Timezone,
			Confidence:    s.Confidence,
			Reason:        s.Reason,
			FormattedTime: s.FormattedTime,
		})
	}

	for _, w := range result.Warnings {
		resp.Warnings = append(resp.Warnings, WarningDTO{
			Participant: w.Participant,
			Message:     w.Message,
		})
	}

	return resp
}
