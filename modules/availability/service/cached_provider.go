package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotfinder-api/core/cache"
	"slotfinder-api/core/constants"
	"slotfinder-api/core/logger"
	"slotfinder-api/modules/scheduling/entity"
	schedulingService "slotfinder-api/modules/scheduling/service"
)

// CachedFreeBusyService is a read-through cache in front of another
// free/busy provider. Cache failures are logged and treated as misses so a
// redis outage never blocks suggestions.
type CachedFreeBusyService struct {
	cache cache.Cache
	next  schedulingService.FreeBusyProvider
	ttl   time.Duration
}

// NewCachedFreeBusyService creates a new caching decorator
func NewCachedFreeBusyService(c cache.Cache, next schedulingService.FreeBusyProvider) *CachedFreeBusyService {
	return &CachedFreeBusyService{
		cache: c,
		next:  next,
		ttl:   constants.FreeBusyCacheTTL,
	}
}

// GetBusyIntervals implements scheduling/service.FreeBusyProvider.
func (s *CachedFreeBusyService) GetBusyIntervals(ctx context.Context, participant string, windowStart, windowEnd time.Time, timezone string) ([]entity.BusyInterval, error) {
	key := freeBusyKey(participant, windowStart, windowEnd, timezone)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var intervals []entity.BusyInterval
		if err := json.Unmarshal([]byte(raw), &intervals); err == nil {
			return intervals, nil
		}
		logger.Warn("CachedFreeBusyService:GetBusyIntervals:BadCacheEntry", "key", key)
	} else if err != cache.ErrCacheMiss {
		logger.Warn("CachedFreeBusyService:GetBusyIntervals:CacheGetFailed", "key", key, "error", err)
	}

	intervals, err := s.next.GetBusyIntervals(ctx, participant, windowStart, windowEnd, timezone)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(intervals); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
			logger.Warn("CachedFreeBusyService:GetBusyIntervals:CacheSetFailed", "key", key, "error", err)
		}
	}

	return intervals, nil
}

func freeBusyKey(participant string, windowStart, windowEnd time.Time, timezone string) string {
	return fmt.Sprintf("%s%s:%d:%d:%s",
		constants.RedisKeyFreeBusy, participant, windowStart.Unix(), windowEnd.Unix(), timezone)
}
