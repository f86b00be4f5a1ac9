package controller

import (
	"slotfinder-api/core/controller"
	"slotfinder-api/core/errors"
	"slotfinder-api/modules/profile/dto"
	"slotfinder-api/modules/profile/service"

	"github.com/labstack/echo/v4"
)

// ProfileController handles scheduling profile HTTP requests
type ProfileController struct {
	controller.BaseController
	ProfileService service.ProfileServiceInterface
}

// NewProfileController creates a new controller
func NewProfileController(svc service.ProfileServiceInterface) *ProfileController {
	return &ProfileController{
		BaseController: controller.NewBaseController(),
		ProfileService: svc,
	}
}

// GetProfiles handles GET /profiles
// @Summary List scheduling profiles
// @Description List all active per-client scheduling profiles
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ProfileResponse
// @Failure 401 {object} errors.AppError
// @Router /private/profiles [get]
func (c *ProfileController) GetProfiles(ctx echo.Context) error {
	result, appErr := c.ProfileService.GetProfiles(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetProfile handles GET /profiles/:slug
// @Summary Get a scheduling profile
// @Description Get one scheduling profile by its slug
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Profile slug"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} errors.AppError
// @Router /private/profiles/{slug} [get]
func (c *ProfileController) GetProfile(ctx echo.Context) error {
	rawSlug := ctx.Param("slug")
	if rawSlug == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Profile slug is required")
	}

	profile, appErr := c.ProfileService.GetProfileBySlug(ctx.Request().Context(), rawSlug)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.ToProfileResponse(profile), "Success")
}
