package repository

import (
	"context"
	"database/sql"

	"slotfinder-api/core/database"
	"slotfinder-api/core/logger"
	"slotfinder-api/modules/profile/entity"

	"github.com/google/uuid"
)

// ProfileRepository reads scheduling profiles from the scheduling_profiles table
type ProfileRepository struct {
	DB database.IDatabase
}

// ProfileRepositoryInterface defines the repository contract
type ProfileRepositoryInterface interface {
	GetProfileByID(ctx context.Context, id uuid.UUID) (*entity.SchedulingProfile, error)
	GetProfileBySlug(ctx context.Context, slug string) (*entity.SchedulingProfile, error)
	GetActiveProfiles(ctx context.Context) ([]entity.SchedulingProfile, error)
}

// NewProfileRepository creates a new repository instance
func NewProfileRepository(db database.IDatabase) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

const profileColumns = `
	id, name, slug, timezone, business_hours, duration_minutes,
	max_suggestions, preferred_times, organizer_mailbox, active,
	created_at, updated_at
`

func (r *ProfileRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*entity.SchedulingProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM scheduling_profiles WHERE id = $1`

	var profile entity.SchedulingProfile
	err := r.DB.GetContext(ctx, &profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProfileRepository:GetProfileByID", "error", err, "id", id)
		return nil, err
	}

	return &profile, nil
}

func (r *ProfileRepository) GetProfileBySlug(ctx context.Context, slug string) (*entity.SchedulingProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM scheduling_profiles WHERE slug = $1 AND active = TRUE`

	var profile entity.SchedulingProfile
	err := r.DB.GetContext(ctx, &profile, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProfileRepository:GetProfileBySlug", "error", err, "slug", slug)
		return nil, err
	}

	return &profile, nil
}

func (r *ProfileRepository) GetActiveProfiles(ctx context.Context) ([]entity.SchedulingProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM scheduling_profiles WHERE active = TRUE ORDER BY created_at`

	profiles := []entity.SchedulingProfile{}
	err := r.DB.SelectContext(ctx, &profiles, query)
	if err != nil {
		logger.Error("ProfileRepository:GetActiveProfiles", "error", err)
		return nil, err
	}

	return profiles, nil
}
