package service

import (
	"context"
	"time"

	"slotfinder-api/core/errors"
	"slotfinder-api/modules/scheduling/dto"
	"slotfinder-api/modules/scheduling/entity"
	profileService "slotfinder-api/modules/profile/service"
)

// SchedulingService exposes the slot finder to the HTTP layer, either with
// inline configuration or through a stored scheduling profile.
type SchedulingService struct {
	finder   *SlotFinder
	profiles profileService.ProfileServiceInterface
}

// SchedulingServiceInterface defines the service contract
type SchedulingServiceInterface interface {
	SuggestTimes(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, *errors.AppError)
	SuggestTimesForProfile(ctx context.Context, slug string, req *dto.ProfileSuggestRequest) (*dto.SuggestResponse, *errors.AppError)
}

// NewSchedulingService creates a new scheduling service
func NewSchedulingService(provider FreeBusyProvider, profiles profileService.ProfileServiceInterface) SchedulingServiceInterface {
	return &SchedulingService{
		finder:   NewSlotFinder(provider),
		profiles: profiles,
	}
}

// SuggestTimes finds ranked meeting time suggestions for an inline query
func (s *SchedulingService) SuggestTimes(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, *errors.AppError) {
	startDate, appErr := parseDate(req.StartDate, "start_date")
	if appErr != nil {
		return nil, appErr
	}
	endDate, appErr := parseDate(req.EndDate, "end_date")
	if appErr != nil {
		return nil, appErr
	}

	query := &entity.MeetingQuery{
		AttendeeEmail:    req.AttendeeEmail,
		OrganizerMailbox: req.OrganizerMailbox,
		Timezone:         req.Timezone,
		BusinessHours:    req.BusinessHours,
		StartDate:        startDate,
		EndDate:          endDate,
		DurationMinutes:  req.DurationMinutes,
		MaxSuggestions:   req.MaxSuggestions,
		PreferredTimes:   entity.TimePreference(req.PreferredTimes),
	}

	result, appErr := s.finder.FindOptimalMeetingTimes(ctx, query)
	if appErr != nil {
		return nil, appErr
	}

	return dto.ToSuggestResponse(result), nil
}

// SuggestTimesForProfile finds suggestions using a stored profile's timezone,
// business hours and defaults.
func (s *SchedulingService) SuggestTimesForProfile(ctx context.Context, slug string, req *dto.ProfileSuggestRequest) (*dto.SuggestResponse, *errors.AppError) {
	profile, appErr := s.profiles.GetProfileBySlug(ctx, slug)
	if appErr != nil {
		return nil, appErr
	}

	hours, appErr := s.profiles.BusinessHours(profile)
	if appErr != nil {
		return nil, appErr
	}

	startDate, appErr := parseDate(req.StartDate, "start_date")
	if appErr != nil {
		return nil, appErr
	}
	endDate, appErr := parseDate(req.EndDate, "end_date")
	if appErr != nil {
		return nil, appErr
	}

	query := &entity.MeetingQuery{
		AttendeeEmail:    req.AttendeeEmail,
		OrganizerMailbox: profile.OrganizerMailbox,
		Timezone:         profile.Timezone,
		BusinessHours:    hours,
		StartDate:        startDate,
		EndDate:          endDate,
		DurationMinutes:  profile.DurationMinutes,
		MaxSuggestions:   profile.MaxSuggestions,
		PreferredTimes:   entity.TimePreference(profile.PreferredTimes),
	}

	result, appErr := s.finder.FindOptimalMeetingTimes(ctx, query)
	if appErr != nil {
		return nil, appErr
	}

	return dto.ToSuggestResponse(result), nil
}

// parseDate accepts RFC3339 or bare YYYY-MM-DD; empty means "use defaults".
func parseDate(value string, field string) (time.Time, *errors.AppError) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "invalid "+field+" format", nil)
}
