package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"slotfinder-api/core/constants"
	"slotfinder-api/core/errors"
	"slotfinder-api/core/logger"
	"slotfinder-api/modules/scheduling/entity"
)

// FreeBusyProvider supplies busy intervals for a participant's calendar.
// Implementations live in modules/availability.
type FreeBusyProvider interface {
	GetBusyIntervals(ctx context.Context, participant string, windowStart, windowEnd time.Time, timezone string) ([]entity.BusyInterval, error)
}

// SlotFinder runs the suggestion pipeline: fetch free/busy, generate the
// business-hour candidate grid, filter conflicts, score, rank and format.
// Provider failures never surface as errors; a partially failed fetch
// degrades to an optimistic empty busy list with a warning, and a total
// failure falls back to the fixed default slots.
type SlotFinder struct {
	provider FreeBusyProvider
	// now is injected so scoring is reproducible in tests
	now func() time.Time
}

// NewSlotFinder creates a new slot finder
func NewSlotFinder(provider FreeBusyProvider) *SlotFinder {
	return &SlotFinder{
		provider: provider,
		now:      time.Now,
	}
}

// FindOptimalMeetingTimes returns up to MaxSuggestions ranked slots for the
// query. The only error it returns is an invalid configuration (bad timezone,
// malformed business hours, inverted window); every other failure resolves to
// a degraded or fallback result.
func (sf *SlotFinder) FindOptimalMeetingTimes(ctx context.Context, query *entity.MeetingQuery) (result *entity.SuggestionResult, appErr *errors.AppError) {
	now := sf.now()
	query.ApplyDefaults(now)

	loc, hours, appErr := sf.validateQuery(query)
	if appErr != nil {
		return nil, appErr
	}

	// The fallback path is the last-resort guarantee: whatever goes wrong
	// past validation, the caller still gets a usable list.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("SlotFinder:FindOptimalMeetingTimes:Panic", "panic", r)
			result = sf.fallbackResult(query, loc)
			appErr = nil
		}
	}()

	busyByParticipant, warnings := sf.fetchFreeBusy(ctx, query)
	if len(warnings) == len(query.Participants()) {
		// Every provider call failed; no live calendar data at all.
		logger.Warn("SlotFinder:FindOptimalMeetingTimes:AllProvidersFailed",
			"attendee", query.AttendeeEmail, "participants", len(query.Participants()))
		return sf.fallbackResult(query, loc), nil
	}

	candidates := sf.generateBusinessHourSlots(query, hours, loc)

	freeSlots := make([]entity.TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		free := true
		for _, busy := range busyByParticipant {
			if !isSlotFree(slot, busy) {
				free = false
				break
			}
		}
		if free {
			freeSlots = append(freeSlots, slot)
		}
	}

	scored := make([]entity.ScoredSlot, 0, len(freeSlots))
	for _, slot := range freeSlots {
		confidence, reason := scoreTimeSlot(slot, query.PreferredTimes, loc, now)
		scored = append(scored, entity.ScoredSlot{
			Slot:          slot,
			Confidence:    confidence,
			Reason:        reason,
			FormattedTime: formatTimeSlot(slot, loc),
		})
	}

	// Descending by confidence; chronological order breaks ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})

	if len(scored) > query.MaxSuggestions {
		scored = scored[:query.MaxSuggestions]
	}

	return &entity.SuggestionResult{
		Slots:    scored,
		Warnings: warnings,
	}, nil
}

// validateQuery resolves the timezone and parses the business hours once at
// query entry. A malformed configuration is a caller bug and fails fast.
func (sf *SlotFinder) validateQuery(query *entity.MeetingQuery) (*time.Location, *entity.BusinessHours, *errors.AppError) {
	if query.AttendeeEmail == "" {
		return nil, nil, errors.NewAppError(errors.ErrInvalidSchedulingConfig, "attendee email is required", nil)
	}

	loc, err := time.LoadLocation(query.Timezone)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInvalidSchedulingConfig, "unknown timezone: "+query.Timezone, err)
	}

	hours, err := entity.ParseBusinessHours(query.BusinessHours)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInvalidSchedulingConfig, "invalid business hours", err)
	}

	if query.DurationMinutes < 0 || query.MaxSuggestions < 0 {
		return nil, nil, errors.NewAppError(errors.ErrInvalidSchedulingConfig, "duration and max suggestions must not be negative", nil)
	}
	if query.EndDate.Before(query.StartDate) {
		return nil, nil, errors.NewAppError(errors.ErrInvalidSchedulingConfig, "search window end precedes its start", nil)
	}

	return loc, hours, nil
}

// fetchFreeBusy collects busy intervals for every participant. A failed call
// is treated as "no known conflicts" for that participant; the degradation is
// reported back as a warning instead of failing the whole request.
func (sf *SlotFinder) fetchFreeBusy(ctx context.Context, query *entity.MeetingQuery) (map[string][]entity.BusyInterval, []entity.SchedulingWarning) {
	busyByParticipant := make(map[string][]entity.BusyInterval)
	warnings := []entity.SchedulingWarning{}

	for _, participant := range query.Participants() {
		fetchCtx, cancel := context.WithTimeout(ctx, constants.FreeBusyFetchTimeout)
		intervals, err := sf.provider.GetBusyIntervals(fetchCtx, participant, query.StartDate, query.EndDate, query.Timezone)
		cancel()

		if err != nil {
			logger.Warn("SlotFinder:fetchFreeBusy:ProviderError",
				"participant", participant, "error", err)
			busyByParticipant[participant] = nil
			warnings = append(warnings, entity.SchedulingWarning{
				Participant: participant,
				Message:     "calendar availability could not be read; assuming no conflicts",
			})
			continue
		}
		busyByParticipant[participant] = intervals
	}

	return busyByParticipant, warnings
}

// generateBusinessHourSlots enumerates candidates of DurationMinutes length
// at a fixed 30-minute step, for every day in [StartDate, EndDate), within
// that day's configured working window and clamped to the query window.
func (sf *SlotFinder) generateBusinessHourSlots(query *entity.MeetingQuery, hours *entity.BusinessHours, loc *time.Location) []entity.TimeSlot {
	slots := []entity.TimeSlot{}
	duration := time.Duration(query.DurationMinutes) * time.Minute
	step := time.Duration(constants.SlotStepMinutes) * time.Minute

	localStart := query.StartDate.In(loc)
	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)

	for day.Before(query.EndDate) {
		window, ok := hours.Window(entity.ClassifyDay(day.Weekday()))
		if !ok {
			day = day.AddDate(0, 0, 1)
			continue
		}

		dayStart := time.Date(day.Year(), day.Month(), day.Day(), window.StartHour, window.StartMinute, 0, 0, loc)
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), window.EndHour, window.EndMinute, 0, 0, loc)

		for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(step) {
			end := cur.Add(duration)
			if cur.Before(query.StartDate) || end.After(query.EndDate) {
				continue
			}
			slots = append(slots, entity.TimeSlot{
				Start:    cur,
				End:      end,
				Timezone: query.Timezone,
			})
		}

		day = day.AddDate(0, 0, 1)
	}

	return slots
}

// isSlotFree reports whether the slot overlaps none of the busy intervals.
// Half-open semantics: touching endpoints do not conflict.
func isSlotFree(slot entity.TimeSlot, busy []entity.BusyInterval) bool {
	for _, b := range busy {
		if slot.Start.Before(b.End) && slot.End.After(b.Start) {
			return false
		}
	}
	return true
}

// scoreTimeSlot assigns a confidence in [0,1] plus a rationale. Base 0.5,
// additive adjustments, clamped at the end. Exactly one of the preference
// rules applies; the rest combine independently.
func scoreTimeSlot(slot entity.TimeSlot, preference entity.TimePreference, loc *time.Location, now time.Time) (float64, string) {
	start := slot.Start.In(loc)
	hour := start.Hour()
	weekday := start.Weekday()

	confidence := 0.5
	reasons := []string{}

	if weekday >= time.Monday && weekday <= time.Friday {
		confidence += 0.2
		reasons = append(reasons, "weekday")
	} else {
		confidence -= 0.1
		reasons = append(reasons, "weekend")
	}

	switch preference {
	case entity.PreferenceMorning:
		if hour >= 9 && hour < 12 {
			confidence += 0.2
			reasons = append(reasons, "preferred morning time")
		}
	case entity.PreferenceAfternoon:
		if hour >= 13 && hour < 16 {
			confidence += 0.2
			reasons = append(reasons, "preferred afternoon time")
		}
	default:
		if hour >= 9 && hour < 17 {
			confidence += 0.1
			reasons = append(reasons, "business hours")
		}
	}

	if hour == 12 {
		confidence -= 0.15
		reasons = append(reasons, "lunch time")
	}

	if hour < 8 || hour > 17 {
		confidence -= 0.2
		reasons = append(reasons, "outside typical hours")
	}

	hoursFromNow := slot.Start.Sub(now).Hours()
	if hoursFromNow >= 24 && hoursFromNow <= 72 {
		confidence += 0.1
		reasons = append(reasons, "good timing")
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return confidence, strings.Join(reasons, ", ")
}

// formatTimeSlot renders a slot for display in its declared timezone,
// e.g. "Tuesday, Jan 14, 2:00 PM EST - 2:30 PM". Display only; never used
// for comparisons.
func formatTimeSlot(slot entity.TimeSlot, loc *time.Location) string {
	start := slot.Start.In(loc)
	end := slot.End.In(loc)
	return start.Format("Monday, Jan 2, 3:04 PM MST") + " - " + end.Format("3:04 PM")
}

// fallbackResult produces the fixed default suggestions used when live
// calendar data is unavailable: one weekday slot per day at 10:00 local,
// starting tomorrow. This path never fails.
func (sf *SlotFinder) fallbackResult(query *entity.MeetingQuery, loc *time.Location) *entity.SuggestionResult {
	slots := sf.generateFallbackSlots(query, loc)
	return &entity.SuggestionResult{
		Slots:    slots,
		Fallback: true,
	}
}

func (sf *SlotFinder) generateFallbackSlots(query *entity.MeetingQuery, loc *time.Location) []entity.ScoredSlot {
	slots := make([]entity.ScoredSlot, 0, query.MaxSuggestions)
	duration := time.Duration(query.DurationMinutes) * time.Minute

	localStart := query.StartDate.In(loc)
	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), constants.FallbackSlotHour, 0, 0, 0, loc)
	day = day.AddDate(0, 0, 1)

	for len(slots) < query.MaxSuggestions {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}

		slot := entity.TimeSlot{
			Start:    day,
			End:      day.Add(duration),
			Timezone: query.Timezone,
		}
		slots = append(slots, entity.ScoredSlot{
			Slot:          slot,
			Confidence:    constants.FallbackConfidence,
			Reason:        "fallback suggestion",
			FormattedTime: formatTimeSlot(slot, loc),
		})

		day = day.AddDate(0, 0, 1)
	}

	return slots
}
