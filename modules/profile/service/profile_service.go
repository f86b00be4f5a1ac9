package service

import (
	"context"
	"encoding/json"

	"slotfinder-api/core/errors"
	"slotfinder-api/core/logger"
	"slotfinder-api/modules/profile/dto"
	"slotfinder-api/modules/profile/entity"
	"slotfinder-api/modules/profile/repository"
	schedulingEntity "slotfinder-api/modules/scheduling/entity"

	"github.com/gosimple/slug"
)

// ProfileService serves validated scheduling profiles
type ProfileService struct {
	repo repository.ProfileRepositoryInterface
}

// ProfileServiceInterface defines the service contract
type ProfileServiceInterface interface {
	GetProfileBySlug(ctx context.Context, rawSlug string) (*entity.SchedulingProfile, *errors.AppError)
	GetProfiles(ctx context.Context) ([]dto.ProfileResponse, *errors.AppError)
	GetActiveProfiles(ctx context.Context) ([]entity.SchedulingProfile, *errors.AppError)
	BusinessHours(profile *entity.SchedulingProfile) (map[string]string, *errors.AppError)
}

// NewProfileService creates a new profile service
func NewProfileService(repo repository.ProfileRepositoryInterface) ProfileServiceInterface {
	return &ProfileService{repo: repo}
}

// GetProfileBySlug loads an active profile and validates its business hours
// before handing it to the scheduling pipeline. A stored malformed hours
// string is surfaced as a configuration error, not silently skipped.
func (s *ProfileService) GetProfileBySlug(ctx context.Context, rawSlug string) (*entity.SchedulingProfile, *errors.AppError) {
	normalized := slug.Make(rawSlug)

	profile, err := s.repo.GetProfileBySlug(ctx, normalized)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load scheduling profile", err)
	}
	if profile == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "scheduling profile not found", nil)
	}

	if _, appErr := s.BusinessHours(profile); appErr != nil {
		return nil, appErr
	}

	return profile, nil
}

// GetProfiles lists all active profiles as DTOs
func (s *ProfileService) GetProfiles(ctx context.Context) ([]dto.ProfileResponse, *errors.AppError) {
	profiles, err := s.repo.GetActiveProfiles(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list scheduling profiles", err)
	}

	result := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, *dto.ToProfileResponse(&profiles[i]))
	}
	return result, nil
}

// GetActiveProfiles returns the raw active profiles (used by the
// availability cache warm task).
func (s *ProfileService) GetActiveProfiles(ctx context.Context) ([]entity.SchedulingProfile, *errors.AppError) {
	profiles, err := s.repo.GetActiveProfiles(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list scheduling profiles", err)
	}
	return profiles, nil
}

// BusinessHours decodes and validates the profile's stored hours mapping.
func (s *ProfileService) BusinessHours(profile *entity.SchedulingProfile) (map[string]string, *errors.AppError) {
	hours := map[string]string{}
	if profile.BusinessHours != "" {
		if err := json.Unmarshal([]byte(profile.BusinessHours), &hours); err != nil {
			logger.Error("ProfileService:BusinessHours:Unmarshal:Error", "error", err, "profile", profile.Slug)
			return nil, errors.NewAppError(errors.ErrInvalidSchedulingConfig, "profile business hours are not valid JSON", err)
		}
	}

	if _, err := schedulingEntity.ParseBusinessHours(hours); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidSchedulingConfig, "profile business hours are malformed", err)
	}

	return hours, nil
}
