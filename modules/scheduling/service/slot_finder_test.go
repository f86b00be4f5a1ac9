package service

import (
	"context"
	"errors"
	"testing"
	"time"

	coreErrors "slotfinder-api/core/errors"
	"slotfinder-api/modules/scheduling/entity"
)

type fakeProvider struct {
	busy  map[string][]entity.BusyInterval
	fail  map[string]bool
	panic bool
	calls []string
}

func (f *fakeProvider) GetBusyIntervals(_ context.Context, participant string, _, _ time.Time, _ string) ([]entity.BusyInterval, error) {
	f.calls = append(f.calls, participant)
	if f.panic {
		panic("provider exploded")
	}
	if f.fail[participant] {
		return nil, errors.New("upstream unavailable")
	}
	return f.busy[participant], nil
}

func newTestFinder(provider FreeBusyProvider, now time.Time) *SlotFinder {
	finder := NewSlotFinder(provider)
	finder.now = func() time.Time { return now }
	return finder
}

// Monday 06 Jan 2025, 08:00 UTC.
var testNow = time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)

func baseQuery() *entity.MeetingQuery {
	return &entity.MeetingQuery{
		AttendeeEmail: "attendee@example.com",
		Timezone:      "UTC",
		BusinessHours: map[string]string{"mon_fri": "09:00-17:00"},
		StartDate:     time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC),
	}
}

func TestFindOptimalMeetingTimes_NarrowWindow(t *testing.T) {
	provider := &fakeProvider{}
	finder := newTestFinder(provider, testNow)

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), baseQuery())
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Fallback {
		t.Fatal("expected a live result, got fallback")
	}
	if len(result.Slots) != 2 {
		t.Fatalf("expected 2 slots in a one-hour window, got %d", len(result.Slots))
	}

	wantStarts := []time.Time{
		time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 7, 9, 30, 0, 0, time.UTC),
	}
	for i, want := range wantStarts {
		if !result.Slots[i].Slot.Start.Equal(want) {
			t.Errorf("slot %d start = %v, want %v", i, result.Slots[i].Slot.Start, want)
		}
	}
}

func TestFindOptimalMeetingTimes_ConflictFiltering(t *testing.T) {
	provider := &fakeProvider{
		busy: map[string][]entity.BusyInterval{
			"attendee@example.com": {
				{
					Start: time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC),
					End:   time.Date(2025, 1, 7, 9, 30, 0, 0, time.UTC),
				},
			},
		},
	}
	finder := newTestFinder(provider, testNow)

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), baseQuery())
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Slots) != 1 {
		t.Fatalf("expected 1 free slot, got %d", len(result.Slots))
	}

	// The busy block ends exactly when this slot starts; touching endpoints
	// do not conflict.
	want := time.Date(2025, 1, 7, 9, 30, 0, 0, time.UTC)
	if !result.Slots[0].Slot.Start.Equal(want) {
		t.Errorf("slot start = %v, want %v", result.Slots[0].Slot.Start, want)
	}
}

func TestFindOptimalMeetingTimes_FullyBookedWindow(t *testing.T) {
	// A busy block straddling both candidate starts leaves no free slot at
	// all; the result is an empty live list, not a fallback.
	provider := &fakeProvider{
		busy: map[string][]entity.BusyInterval{
			"attendee@example.com": {
				{
					Start: time.Date(2025, 1, 7, 9, 15, 0, 0, time.UTC),
					End:   time.Date(2025, 1, 7, 9, 45, 0, 0, time.UTC),
				},
			},
		},
	}
	finder := newTestFinder(provider, testNow)

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), baseQuery())
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Fallback {
		t.Fatal("a fully booked window is a valid live result, not a fallback")
	}
	if len(result.Slots) != 0 {
		t.Fatalf("expected 0 free slots, got %d", len(result.Slots))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %d", len(result.Warnings))
	}
}

func TestFindOptimalMeetingTimes_RankingAndTruncation(t *testing.T) {
	provider := &fakeProvider{}
	finder := newTestFinder(provider, testNow)

	query := baseQuery()
	query.EndDate = time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)
	query.MaxSuggestions = 3

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), query)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Slots) != 3 {
		t.Fatalf("expected truncation to 3 slots, got %d", len(result.Slots))
	}
	for i := 1; i < len(result.Slots); i++ {
		if result.Slots[i].Confidence > result.Slots[i-1].Confidence {
			t.Errorf("slots not in descending confidence order at %d: %v > %v",
				i, result.Slots[i].Confidence, result.Slots[i-1].Confidence)
		}
	}
	// Equal confidences keep generation (chronological) order.
	for i := 1; i < len(result.Slots); i++ {
		if result.Slots[i].Confidence == result.Slots[i-1].Confidence &&
			result.Slots[i].Slot.Start.Before(result.Slots[i-1].Slot.Start) {
			t.Errorf("tie at %d broken out of chronological order", i)
		}
	}
}

func TestFindOptimalMeetingTimes_PartialProviderFailure(t *testing.T) {
	provider := &fakeProvider{
		fail: map[string]bool{"attendee@example.com": true},
	}
	finder := newTestFinder(provider, testNow)

	query := baseQuery()
	query.OrganizerMailbox = "organizer@example.com"

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), query)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Fallback {
		t.Fatal("partial failure must degrade, not fall back")
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	if result.Warnings[0].Participant != "attendee@example.com" {
		t.Errorf("warning participant = %q", result.Warnings[0].Participant)
	}
	// The failed participant contributes no conflicts, so the window still
	// yields both candidate slots.
	if len(result.Slots) != 2 {
		t.Errorf("expected 2 slots under degraded fetch, got %d", len(result.Slots))
	}
}

func TestFindOptimalMeetingTimes_AllProvidersFailed(t *testing.T) {
	provider := &fakeProvider{
		fail: map[string]bool{
			"attendee@example.com":  true,
			"organizer@example.com": true,
		},
	}
	finder := newTestFinder(provider, testNow)

	query := baseQuery()
	query.OrganizerMailbox = "organizer@example.com"
	query.MaxSuggestions = 3

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), query)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if !result.Fallback {
		t.Fatal("expected fallback result when no provider responds")
	}
	if len(result.Slots) != 3 {
		t.Fatalf("expected 3 fallback slots, got %d", len(result.Slots))
	}
	for i, slot := range result.Slots {
		if slot.Confidence != 0.6 {
			t.Errorf("fallback slot %d confidence = %v, want 0.6", i, slot.Confidence)
		}
		if slot.Reason != "fallback suggestion" {
			t.Errorf("fallback slot %d reason = %q", i, slot.Reason)
		}
		if slot.Slot.Start.Hour() != 10 {
			t.Errorf("fallback slot %d hour = %d, want 10", i, slot.Slot.Start.Hour())
		}
		wd := slot.Slot.Start.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Errorf("fallback slot %d lands on %v", i, wd)
		}
	}
	for i := 1; i < len(result.Slots); i++ {
		if !result.Slots[i].Slot.Start.After(result.Slots[i-1].Slot.Start) {
			t.Errorf("fallback slots %d and %d are not distinct ascending days", i-1, i)
		}
	}
}

func TestFindOptimalMeetingTimes_FallbackSkipsWeekend(t *testing.T) {
	provider := &fakeProvider{fail: map[string]bool{"attendee@example.com": true}}
	finder := newTestFinder(provider, testNow)

	// Friday start; tomorrow is Saturday, so the first fallback slot must
	// move to Monday.
	query := baseQuery()
	query.StartDate = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	query.EndDate = time.Date(2025, 1, 24, 0, 0, 0, 0, time.UTC)
	query.MaxSuggestions = 2

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), query)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if !result.Fallback {
		t.Fatal("expected fallback result")
	}

	wantFirst := time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC) // Monday
	if !result.Slots[0].Slot.Start.Equal(wantFirst) {
		t.Errorf("first fallback slot = %v, want %v", result.Slots[0].Slot.Start, wantFirst)
	}
	wantSecond := time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC)
	if !result.Slots[1].Slot.Start.Equal(wantSecond) {
		t.Errorf("second fallback slot = %v, want %v", result.Slots[1].Slot.Start, wantSecond)
	}
}

func TestFindOptimalMeetingTimes_ProviderPanicFallsBack(t *testing.T) {
	provider := &fakeProvider{panic: true}
	finder := newTestFinder(provider, testNow)

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), baseQuery())
	if appErr != nil {
		t.Fatalf("unexpected error after panic: %v", appErr)
	}
	if !result.Fallback {
		t.Fatal("expected fallback result after provider panic")
	}
}

func TestFindOptimalMeetingTimes_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.MeetingQuery)
	}{
		{"missing attendee", func(q *entity.MeetingQuery) { q.AttendeeEmail = "" }},
		{"unknown timezone", func(q *entity.MeetingQuery) { q.Timezone = "Mars/Olympus" }},
		{"malformed hours", func(q *entity.MeetingQuery) { q.BusinessHours = map[string]string{"mon_fri": "9-17"} }},
		{"unknown hours key", func(q *entity.MeetingQuery) { q.BusinessHours = map[string]string{"holidays": "09:00-17:00"} }},
		{"inverted window", func(q *entity.MeetingQuery) {
			q.StartDate = time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
			q.EndDate = time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
		}},
		{"negative duration", func(q *entity.MeetingQuery) { q.DurationMinutes = -30 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			finder := newTestFinder(provider, testNow)

			query := baseQuery()
			tt.mutate(query)

			result, appErr := finder.FindOptimalMeetingTimes(context.Background(), query)
			if appErr == nil {
				t.Fatal("expected a configuration error")
			}
			if appErr.Code != coreErrors.ErrInvalidSchedulingConfig {
				t.Errorf("error code = %q, want %q", appErr.Code, coreErrors.ErrInvalidSchedulingConfig)
			}
			if result != nil {
				t.Errorf("expected nil result on config error, got %+v", result)
			}
			if len(provider.calls) != 0 {
				t.Errorf("provider should not be called on config error, got %d calls", len(provider.calls))
			}
		})
	}
}

func TestScoreTimeSlot(t *testing.T) {
	loc := time.UTC

	slotAt := func(day, hour int) entity.TimeSlot {
		start := time.Date(2025, 1, day, hour, 0, 0, 0, loc)
		return entity.TimeSlot{Start: start, End: start.Add(30 * time.Minute), Timezone: "UTC"}
	}

	tests := []struct {
		name           string
		slot           entity.TimeSlot
		preference     entity.TimePreference
		wantConfidence float64
		wantReason     string
	}{
		{
			// Tue 10:00, 26h out from Monday 08:00.
			name:           "weekday business hours good timing",
			slot:           slotAt(7, 10),
			preference:     entity.PreferenceAny,
			wantConfidence: 0.9,
			wantReason:     "weekday, business hours, good timing",
		},
		{
			name:           "morning preference matched",
			slot:           slotAt(7, 9),
			preference:     entity.PreferenceMorning,
			wantConfidence: 1.0,
			wantReason:     "weekday, preferred morning time, good timing",
		},
		{
			name:           "morning preference missed",
			slot:           slotAt(7, 14),
			preference:     entity.PreferenceMorning,
			wantConfidence: 0.8,
			wantReason:     "weekday, good timing",
		},
		{
			name:           "afternoon preference matched",
			slot:           slotAt(7, 13),
			preference:     entity.PreferenceAfternoon,
			wantConfidence: 1.0,
			wantReason:     "weekday, preferred afternoon time, good timing",
		},
		{
			name:           "lunch penalty",
			slot:           slotAt(7, 12),
			preference:     entity.PreferenceAny,
			wantConfidence: 0.75,
			wantReason:     "weekday, business hours, lunch time, good timing",
		},
		{
			// Sat 11 Jan is outside the 24-72h timing bonus window.
			name:           "weekend slot",
			slot:           slotAt(11, 10),
			preference:     entity.PreferenceAny,
			wantConfidence: 0.5,
			wantReason:     "weekend, business hours",
		},
		{
			// Saturday noon with a missed preference: only the weekend and
			// lunch penalties apply.
			name:           "weekend lunch slot",
			slot:           slotAt(11, 12),
			preference:     entity.PreferenceMorning,
			wantConfidence: 0.25,
			wantReason:     "weekend, lunch time",
		},
		{
			// Tue 07:00 is only 23h out, so no timing bonus.
			name:           "early slot outside typical hours",
			slot:           slotAt(7, 7),
			preference:     entity.PreferenceAny,
			wantConfidence: 0.5,
			wantReason:     "weekday, outside typical hours",
		},
		{
			name:           "late slot outside typical hours",
			slot:           slotAt(7, 18),
			preference:     entity.PreferenceAny,
			wantConfidence: 0.6,
			wantReason:     "weekday, outside typical hours, good timing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence, reason := scoreTimeSlot(tt.slot, tt.preference, loc, testNow)
			if diff := confidence - tt.wantConfidence; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("confidence = %v, want %v", confidence, tt.wantConfidence)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestScoreTimeSlotClamped(t *testing.T) {
	loc := time.UTC

	// Sunday 05:00, same day as now: weekend -0.1, outside hours -0.2, no
	// bonuses. Well above zero, so push further with a synthetic check that
	// the clamp holds at the boundaries.
	start := time.Date(2025, 1, 12, 5, 0, 0, 0, loc)
	slot := entity.TimeSlot{Start: start, End: start.Add(30 * time.Minute)}

	confidence, _ := scoreTimeSlot(slot, entity.PreferenceAny, loc, testNow)
	if confidence < 0 || confidence > 1 {
		t.Errorf("confidence %v outside [0,1]", confidence)
	}
}

func TestFormatTimeSlot(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	slot := entity.TimeSlot{
		Start:    time.Date(2025, 1, 14, 14, 0, 0, 0, loc),
		End:      time.Date(2025, 1, 14, 14, 30, 0, 0, loc),
		Timezone: "America/New_York",
	}

	got := formatTimeSlot(slot, loc)
	want := "Tuesday, Jan 14, 2:00 PM EST - 2:30 PM"
	if got != want {
		t.Errorf("formatTimeSlot = %q, want %q", got, want)
	}
}

func TestGenerateBusinessHourSlots_SkipsUnconfiguredDays(t *testing.T) {
	provider := &fakeProvider{}
	finder := newTestFinder(provider, testNow)

	// Saturday and Sunday have no configured window; a week-long search must
	// only produce weekday slots.
	query := baseQuery()
	query.StartDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	query.EndDate = time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	query.MaxSuggestions = 100

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), query)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	for _, slot := range result.Slots {
		wd := slot.Slot.Start.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Errorf("slot generated on unconfigured %v", wd)
		}
	}
}

func TestGenerateBusinessHourSlots_SaturdayWindow(t *testing.T) {
	provider := &fakeProvider{}
	finder := newTestFinder(provider, testNow)

	query := baseQuery()
	query.BusinessHours = map[string]string{"saturday": "10:00-12:00"}
	query.StartDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	query.EndDate = time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	query.MaxSuggestions = 100

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), query)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	// 10:00-12:00 with 30-minute meetings on a 30-minute grid: 4 slots.
	if len(result.Slots) != 4 {
		t.Fatalf("expected 4 saturday slots, got %d", len(result.Slots))
	}
	for _, slot := range result.Slots {
		if slot.Slot.Start.Weekday() != time.Saturday {
			t.Errorf("slot on %v, want Saturday", slot.Slot.Start.Weekday())
		}
	}
}

func TestFindOptimalMeetingTimes_DefaultsApplied(t *testing.T) {
	provider := &fakeProvider{}
	finder := newTestFinder(provider, testNow)

	query := &entity.MeetingQuery{
		AttendeeEmail: "attendee@example.com",
		Timezone:      "UTC",
		BusinessHours: map[string]string{"mon_fri": "09:00-17:00"},
	}

	result, appErr := finder.FindOptimalMeetingTimes(context.Background(), query)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Slots) != 5 {
		t.Errorf("expected default max of 5 suggestions, got %d", len(result.Slots))
	}
	for _, slot := range result.Slots {
		if got := slot.Slot.End.Sub(slot.Slot.Start); got != 30*time.Minute {
			t.Errorf("slot duration = %v, want default 30m", got)
		}
	}
}
