package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotfinder-api/core/cache"
	"slotfinder-api/modules/scheduling/entity"
)

type fakeCache struct {
	data    map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	val, ok := f.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.setKeys = append(f.setKeys, key)
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

type countingProvider struct {
	intervals []entity.BusyInterval
	err       error
	calls     int
}

func (p *countingProvider) GetBusyIntervals(_ context.Context, _ string, _, _ time.Time, _ string) ([]entity.BusyInterval, error) {
	p.calls++
	return p.intervals, p.err
}

var (
	testWindowStart = time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	testWindowEnd   = time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
)

func TestCachedFreeBusyService_ReadThrough(t *testing.T) {
	c := newFakeCache()
	upstream := &countingProvider{
		intervals: []entity.BusyInterval{
			{
				Start: time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC),
			},
		},
	}
	svc := NewCachedFreeBusyService(c, upstream)

	for i := 0; i < 3; i++ {
		intervals, err := svc.GetBusyIntervals(context.Background(), "a@example.com", testWindowStart, testWindowEnd, "UTC")
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if len(intervals) != 1 {
			t.Fatalf("call %d: got %d intervals, want 1", i, len(intervals))
		}
		if !intervals[0].Start.Equal(upstream.intervals[0].Start) {
			t.Errorf("call %d: interval start = %v", i, intervals[0].Start)
		}
	}

	if upstream.calls != 1 {
		t.Errorf("upstream called %d times, want 1 (repeat calls must hit the cache)", upstream.calls)
	}
	if len(c.setKeys) != 1 {
		t.Errorf("cache populated %d times, want 1", len(c.setKeys))
	}
}

func TestCachedFreeBusyService_DistinctKeysPerQuery(t *testing.T) {
	c := newFakeCache()
	upstream := &countingProvider{}
	svc := NewCachedFreeBusyService(c, upstream)

	ctx := context.Background()
	svc.GetBusyIntervals(ctx, "a@example.com", testWindowStart, testWindowEnd, "UTC")
	svc.GetBusyIntervals(ctx, "b@example.com", testWindowStart, testWindowEnd, "UTC")
	svc.GetBusyIntervals(ctx, "a@example.com", testWindowStart.Add(time.Hour), testWindowEnd, "UTC")
	svc.GetBusyIntervals(ctx, "a@example.com", testWindowStart, testWindowEnd, "America/New_York")

	if upstream.calls != 4 {
		t.Errorf("upstream called %d times, want 4 distinct keys", upstream.calls)
	}
}

func TestCachedFreeBusyService_CacheFailuresAreTransparent(t *testing.T) {
	c := newFakeCache()
	c.getErr = errors.New("redis gone")
	c.setErr = errors.New("redis gone")
	upstream := &countingProvider{}
	svc := NewCachedFreeBusyService(c, upstream)

	_, err := svc.GetBusyIntervals(context.Background(), "a@example.com", testWindowStart, testWindowEnd, "UTC")
	if err != nil {
		t.Fatalf("cache outage must not fail the fetch: %v", err)
	}
	if upstream.calls != 1 {
		t.Errorf("upstream called %d times, want 1", upstream.calls)
	}
}

func TestCachedFreeBusyService_UpstreamErrorNotCached(t *testing.T) {
	c := newFakeCache()
	upstream := &countingProvider{err: errors.New("graph down")}
	svc := NewCachedFreeBusyService(c, upstream)

	_, err := svc.GetBusyIntervals(context.Background(), "a@example.com", testWindowStart, testWindowEnd, "UTC")
	if err == nil {
		t.Fatal("expected upstream error to propagate")
	}
	if len(c.data) != 0 {
		t.Errorf("failed fetch must not populate the cache, got %d entries", len(c.data))
	}
}

func TestCachedFreeBusyService_CorruptEntryFallsThrough(t *testing.T) {
	c := newFakeCache()
	key := freeBusyKey("a@example.com", testWindowStart, testWindowEnd, "UTC")
	c.data[key] = "{not json"

	upstream := &countingProvider{}
	svc := NewCachedFreeBusyService(c, upstream)

	_, err := svc.GetBusyIntervals(context.Background(), "a@example.com", testWindowStart, testWindowEnd, "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upstream.calls != 1 {
		t.Errorf("corrupt entry must fall through to upstream, calls = %d", upstream.calls)
	}
}
