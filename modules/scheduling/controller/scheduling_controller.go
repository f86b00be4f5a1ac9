package controller

import (
	"slotfinder-api/core/controller"
	"slotfinder-api/core/errors"
	"slotfinder-api/modules/scheduling/dto"
	"slotfinder-api/modules/scheduling/service"

	"github.com/labstack/echo/v4"
)

// SchedulingController handles meeting time suggestion HTTP requests
type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

// NewSchedulingController creates a new controller
func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

// SuggestTimes handles POST /scheduling/suggest
// @Summary Suggest meeting times
// @Description Rank candidate meeting slots for an attendee within business hours
// @Tags Scheduling
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SuggestRequest true "Suggestion query"
// @Success 200 {object} dto.SuggestResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /private/scheduling/suggest [post]
func (c *SchedulingController) SuggestTimes(ctx echo.Context) error {
	var req dto.SuggestRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.AttendeeEmail == "" {
		return c.BadRequest(errors.ErrInvalidInput, "attendee_email is required")
	}
	if req.Timezone == "" {
		return c.BadRequest(errors.ErrInvalidInput, "timezone is required")
	}

	result, appErr := c.SchedulingService.SuggestTimes(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Suggestions found")
}

// SuggestTimesForProfile handles POST /scheduling/profiles/:slug/suggest
// @Summary Suggest meeting times for a profile
// @Description Rank candidate meeting slots using a stored scheduling profile
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param slug path string true "Profile slug"
// @Param request body dto.ProfileSuggestRequest true "Suggestion query"
// @Success 200 {object} dto.SuggestResponse
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /public/scheduling/profiles/{slug}/suggest [post]
func (c *SchedulingController) SuggestTimesForProfile(ctx echo.Context) error {
	slug := ctx.Param("slug")
	if slug == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Profile slug is required")
	}

	var req dto.ProfileSuggestRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.AttendeeEmail == "" {
		return c.BadRequest(errors.ErrInvalidInput, "attendee_email is required")
	}

	result, appErr := c.SchedulingService.SuggestTimesForProfile(ctx.Request().Context(), slug, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Suggestions found")
}
