package profile

import (
	"slotfinder-api/core/database"
	"slotfinder-api/core/middleware"
	"slotfinder-api/modules/profile/controller"
	"slotfinder-api/modules/profile/repository"
	"slotfinder-api/modules/profile/router"
	"slotfinder-api/modules/profile/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the profile module and registers routes. The constructed
// service is returned so other modules (scheduling, availability) can consume
// profiles without re-wiring the repository.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.ProfileServiceInterface {
	repo := repository.NewProfileRepository(db)
	svc := service.NewProfileService(repo)
	ctrl := controller.NewProfileController(svc)
	rtr := router.NewProfileRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
