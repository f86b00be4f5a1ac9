package router

import (
	"slotfinder-api/core/middleware"
	"slotfinder-api/modules/profile/controller"

	"github.com/labstack/echo/v4"
)

// ProfileRouter handles scheduling profile routes
type ProfileRouter struct {
	ProfileController *controller.ProfileController
}

// NewProfileRouter creates a new router
func NewProfileRouter(profileController *controller.ProfileController) *ProfileRouter {
	return &ProfileRouter{
		ProfileController: profileController,
	}
}

// Setup registers profile routes
func (r *ProfileRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	profileRoutes := privateRoutes.Group("/profiles", mw.AuthMiddleware())
	profileRoutes.GET("", r.ProfileController.GetProfiles)
	profileRoutes.GET("/:slug", r.ProfileController.GetProfile)
}
