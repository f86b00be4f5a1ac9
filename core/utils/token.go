package utils

import (
	"fmt"
	"strings"

	"slotfinder-api/core/config"
	"slotfinder-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenClaims is the JWT payload accepted on private routes. Tokens are
// issued by the surrounding identity system; this service only validates them.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	ClientID string    `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// GetTokenFromHeader extracts the bearer token from the Authorization header
func GetTokenFromHeader(ctx echo.Context) (string, *errors.AppError) {
	header := ctx.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.NewAppError(errors.ErrInvalidTokenFormat, "authorization header must be a bearer token", nil)
	}

	return parts[1], nil
}

// ValidateAndParseToken verifies the signature and expiry of a JWT and
// returns its claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, fmt.Errorf("config not initialized")
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
