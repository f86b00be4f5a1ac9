package dto

import (
	"encoding/json"
	"time"

	"slotfinder-api/modules/profile/entity"
)

// ProfileResponse for scheduling profile details
type ProfileResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Timezone         string            `json:"timezone"`
	BusinessHours    map[string]string `json:"business_hours"`
	DurationMinutes  int               `json:"duration_minutes"`
	MaxSuggestions   int               `json:"max_suggestions"`
	PreferredTimes   string            `json:"preferred_times"`
	OrganizerMailbox string            `json:"organizer_mailbox,omitempty"`
	Active           bool              `json:"active"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ToProfileResponse maps entity to DTO
func ToProfileResponse(p *entity.SchedulingProfile) *ProfileResponse {
	hours := map[string]string{}
	if p.BusinessHours != "" {
		_ = json.Unmarshal([]byte(p.BusinessHours), &hours)
	}

	return &ProfileResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		Slug:             p.Slug,
		Timezone:         p.Timezone,
		BusinessHours:    hours,
		DurationMinutes:  p.DurationMinutes,
		MaxSuggestions:   p.MaxSuggestions,
		PreferredTimes:   p.PreferredTimes,
		OrganizerMailbox: p.OrganizerMailbox,
		Active:           p.Active,
		CreatedAt:        p.CreatedAt,
	}
}
