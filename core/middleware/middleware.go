package middleware

import (
	"net/http"

	"slotfinder-api/core/constants"
	"slotfinder-api/core/controller"
	"slotfinder-api/core/errors"
	"slotfinder-api/core/logger"
	"slotfinder-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// RequestIDMiddleware attaches a correlation ID to the request context and
// the response header.
func (m *Middleware) RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			requestID := ctx.Request().Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = utils.GenerateRequestID()
			}
			ctx.Set(constants.ContextRequestID, requestID)
			ctx.Response().Header().Set("X-Request-ID", requestID)
			return next(ctx)
		}
	}
}

// AuthMiddleware validates the bearer JWT on private routes and stores the
// parsed claims in the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, appErr := utils.GetTokenFromHeader(ctx)
			if appErr != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, appErr.Code, appErr.Message)
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				logger.Warn("Middleware:Auth:ValidateAndParseToken:Error", "error", err)
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "invalid or expired token")
			}

			ctx.Set(constants.ContextTokenData, claims)
			return next(ctx)
		}
	}
}
