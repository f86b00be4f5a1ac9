package service

import (
	"context"
	"testing"

	coreErrors "slotfinder-api/core/errors"
	"slotfinder-api/modules/profile/dto"
	profileEntity "slotfinder-api/modules/profile/entity"

	"github.com/hibiken/asynq"
)

type fakeProfiles struct {
	active []profileEntity.SchedulingProfile
	err    *coreErrors.AppError
}

func (f *fakeProfiles) GetProfileBySlug(_ context.Context, _ string) (*profileEntity.SchedulingProfile, *coreErrors.AppError) {
	return nil, nil
}

func (f *fakeProfiles) GetProfiles(_ context.Context) ([]dto.ProfileResponse, *coreErrors.AppError) {
	return nil, nil
}

func (f *fakeProfiles) GetActiveProfiles(_ context.Context) ([]profileEntity.SchedulingProfile, *coreErrors.AppError) {
	return f.active, f.err
}

func (f *fakeProfiles) BusinessHours(_ *profileEntity.SchedulingProfile) (map[string]string, *coreErrors.AppError) {
	return nil, nil
}

func TestAvailabilityWarmHandler(t *testing.T) {
	profiles := &fakeProfiles{
		active: []profileEntity.SchedulingProfile{
			{Slug: "acme-sales", Timezone: "UTC", OrganizerMailbox: "sales@acme.example.com"},
			{Slug: "no-mailbox", Timezone: "UTC"},
			{Slug: "acme-support", Timezone: "UTC", OrganizerMailbox: "support@acme.example.com"},
		},
	}
	provider := &countingProvider{}
	handler := NewAvailabilityWarmHandler(provider, profiles)

	task := asynq.NewTask("availability:warm", nil)
	if err := handler.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Profiles without an organizer mailbox have nothing to warm.
	if provider.calls != 2 {
		t.Errorf("provider warmed %d mailboxes, want 2", provider.calls)
	}
}

func TestAvailabilityWarmHandler_ProfileLookupFailure(t *testing.T) {
	profiles := &fakeProfiles{
		err: coreErrors.NewAppError(coreErrors.ErrInternalServer, "db down", nil),
	}
	provider := &countingProvider{}
	handler := NewAvailabilityWarmHandler(provider, profiles)

	// Warming is best effort; a lookup failure must not trigger asynq retries.
	task := asynq.NewTask("availability:warm", nil)
	if err := handler.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("expected nil error for best-effort warm, got %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0", provider.calls)
	}
}
