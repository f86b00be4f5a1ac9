package service

import (
	"context"
	"time"

	"slotfinder-api/core/constants"
	"slotfinder-api/core/logger"
	profileService "slotfinder-api/modules/profile/service"
	schedulingService "slotfinder-api/modules/scheduling/service"

	"github.com/hibiken/asynq"
)

// AvailabilityWarmHandler pre-fetches organizer free/busy windows for active
// scheduling profiles so the first booking-page request of the day hits a
// warm cache. It goes through the cached provider so results are stored as a
// side effect of the fetch.
type AvailabilityWarmHandler struct {
	provider schedulingService.FreeBusyProvider
	profiles profileService.ProfileServiceInterface
}

// NewAvailabilityWarmHandler creates a new warm task handler
func NewAvailabilityWarmHandler(provider schedulingService.FreeBusyProvider, profiles profileService.ProfileServiceInterface) *AvailabilityWarmHandler {
	return &AvailabilityWarmHandler{
		provider: provider,
		profiles: profiles,
	}
}

// ProcessTask handles the periodic availability warm task. Warming is best
// effort: per-profile failures are logged, never retried through asynq.
func (h *AvailabilityWarmHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	profiles, appErr := h.profiles.GetActiveProfiles(ctx)
	if appErr != nil {
		logger.Error("AvailabilityWarmHandler:ProcessTask:GetActiveProfiles:Error", "error", appErr)
		return nil
	}

	windowStart := time.Now()
	windowEnd := windowStart.AddDate(0, 0, constants.AvailabilityWarmWindowDays)

	warmed := 0
	for _, profile := range profiles {
		if profile.OrganizerMailbox == "" {
			continue
		}

		_, err := h.provider.GetBusyIntervals(ctx, profile.OrganizerMailbox, windowStart, windowEnd, profile.Timezone)
		if err != nil {
			logger.Warn("AvailabilityWarmHandler:ProcessTask:WarmFailed",
				"profile", profile.Slug, "mailbox", profile.OrganizerMailbox, "error", err)
			continue
		}
		warmed++
	}

	logger.Info("AvailabilityWarmHandler:ProcessTask:Done", "profiles", len(profiles), "warmed", warmed)
	return nil
}
