package availability

import (
	"slotfinder-api/core/cache"
	"slotfinder-api/core/config"
	"slotfinder-api/modules/availability/service"
	schedulingService "slotfinder-api/modules/scheduling/service"
)

// Init builds the free/busy provider chain: Microsoft Graph behind a circuit
// breaker, wrapped in a redis read-through cache. The availability module has
// no routes of its own; other modules consume the returned provider.
func Init(cfg config.GraphConfig, c cache.Cache) schedulingService.FreeBusyProvider {
	graph := service.NewGraphScheduleService(cfg)
	return service.NewCachedFreeBusyService(c, graph)
}
