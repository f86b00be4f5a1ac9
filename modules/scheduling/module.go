package scheduling

import (
	"slotfinder-api/core/middleware"
	profileService "slotfinder-api/modules/profile/service"
	"slotfinder-api/modules/scheduling/controller"
	"slotfinder-api/modules/scheduling/router"
	"slotfinder-api/modules/scheduling/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the scheduling module and registers routes
func Init(e *echo.Echo, provider service.FreeBusyProvider, profiles profileService.ProfileServiceInterface, mw *middleware.Middleware) {
	svc := service.NewSchedulingService(provider, profiles)
	ctrl := controller.NewSchedulingController(svc)
	rtr := router.NewSchedulingRouter(ctrl)

	rtr.Setup(e, mw)
}
