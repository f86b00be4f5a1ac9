package router

import (
	"slotfinder-api/core/middleware"
	"slotfinder-api/modules/scheduling/controller"

	"github.com/labstack/echo/v4"
)

// SchedulingRouter handles meeting time suggestion routes
type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

// NewSchedulingRouter creates a new router
func NewSchedulingRouter(schedulingController *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{
		SchedulingController: schedulingController,
	}
}

// Setup registers scheduling routes
func (r *SchedulingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	privateRoutes := v1.Group("/private")
	schedulingRoutes := privateRoutes.Group("/scheduling", mw.AuthMiddleware())
	schedulingRoutes.POST("/suggest", r.SchedulingController.SuggestTimes)

	// Public booking-page surface: suggestions by profile slug, no auth.
	publicRoutes := v1.Group("/public")
	publicRoutes.POST("/scheduling/profiles/:slug/suggest", r.SchedulingController.SuggestTimesForProfile)
}
