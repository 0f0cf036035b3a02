package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-market/internal/core/domain"
	"github.com/learnly/course-market/internal/core/ports"
	"github.com/learnly/course-market/internal/pkg/metrics"
)

// Auth extracts the bearer token, verifies it against the role implied
// by the request path, and injects the verified identity into the
// context. The secret is chosen by path prefix ("/admin" requires the
// admin secret, everything else the user secret), never by a claim
// inside the token, so a user token asserting admin still fails
// signature verification.
//
// Expired tokens answer 401; every other verification failure answers
// 403.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectedTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header missing")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.AuthRejectedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing in authorization header")
			}

			role := requiredRole(c.Request().URL.Path)
			username, err := tokens.Verify(parts[1], role)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.AuthRejectedTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				metrics.AuthRejectedTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			c.Set("username", username)
			c.Set("role", role)

			return next(c)
		}
	}
}

// requiredRole maps a request path to the role whose secret must have
// signed the token.
func requiredRole(path string) string {
	if strings.HasPrefix(path, "/admin") {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}
