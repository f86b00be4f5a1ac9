package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"slotfinder-api/modules/profile/entity"

	"github.com/jmoiron/sqlx"
)

type fakeDB struct {
	getErr    error
	profiles  []entity.SchedulingProfile
	lastQuery string
	lastArgs  []any
}

func (f *fakeDB) ExecContext(_ context.Context, _ string, _ ...any) error { return nil }

func (f *fakeDB) GetContext(_ context.Context, dest any, query string, args ...any) error {
	f.lastQuery = query
	f.lastArgs = args
	if f.getErr != nil {
		return f.getErr
	}
	if len(f.profiles) > 0 {
		*dest.(*entity.SchedulingProfile) = f.profiles[0]
	}
	return nil
}

func (f *fakeDB) SelectContext(_ context.Context, dest any, query string, _ ...any) error {
	f.lastQuery = query
	*dest.(*[]entity.SchedulingProfile) = f.profiles
	return nil
}

func (f *fakeDB) QueryRowContext(_ context.Context, _ string, _ ...any) *sql.Row { return nil }

func (f *fakeDB) QueryContext(_ context.Context, _ string, _ ...any) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeDB) NamedQueryContext(_ context.Context, _ string, _ any) (*sqlx.Rows, error) {
	return nil, nil
}

func (f *fakeDB) NamedExecContext(_ context.Context, _ string, _ any) (sql.Result, error) {
	return nil, nil
}

func (f *fakeDB) SQLx() *sqlx.DB { return nil }

func TestGetProfileBySlug_NoRowsMeansNil(t *testing.T) {
	db := &fakeDB{getErr: sql.ErrNoRows}
	repo := NewProfileRepository(db)

	profile, err := repo.GetProfileBySlug(context.Background(), "missing")
	if err != nil {
		t.Fatalf("no rows must not be an error, got %v", err)
	}
	if profile != nil {
		t.Errorf("expected nil profile, got %+v", profile)
	}
	if !strings.Contains(db.lastQuery, "active = TRUE") {
		t.Errorf("slug lookup must filter on active, query: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 1 || db.lastArgs[0] != "missing" {
		t.Errorf("query args = %v", db.lastArgs)
	}
}

func TestGetProfileBySlug_Found(t *testing.T) {
	db := &fakeDB{profiles: []entity.SchedulingProfile{{Slug: "acme-sales", Timezone: "UTC"}}}
	repo := NewProfileRepository(db)

	profile, err := repo.GetProfileBySlug(context.Background(), "acme-sales")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile == nil || profile.Slug != "acme-sales" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestGetProfileBySlug_QueryError(t *testing.T) {
	db := &fakeDB{getErr: errors.New("connection refused")}
	repo := NewProfileRepository(db)

	if _, err := repo.GetProfileBySlug(context.Background(), "acme-sales"); err == nil {
		t.Fatal("expected the query error to propagate")
	}
}

func TestGetActiveProfiles(t *testing.T) {
	db := &fakeDB{profiles: []entity.SchedulingProfile{{Slug: "a"}, {Slug: "b"}}}
	repo := NewProfileRepository(db)

	profiles, err := repo.GetActiveProfiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if !strings.Contains(db.lastQuery, "active = TRUE") {
		t.Errorf("listing must filter on active, query: %s", db.lastQuery)
	}
}
