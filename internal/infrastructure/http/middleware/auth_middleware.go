package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/jwt"
)

const (
	// ActorContextKey is the echo context key for the authenticated actor
	ActorContextKey = "actor"
)

// EchoAuth returns an Echo middleware that validates the JWT and sets
// the authenticated actor into the Echo context
func EchoAuth(jwtManager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			actor := entities.Actor{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  entities.UserRole(claims.Role),
			}
			c.Set(ActorContextKey, actor)

			return next(c)
		}
	}
}

// GetActorFromContext retrieves the authenticated actor from the Echo context
func GetActorFromContext(c echo.Context) (entities.Actor, bool) {
	actor, ok := c.Get(ActorContextKey).(entities.Actor)
	return actor, ok
}

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
