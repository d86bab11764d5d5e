package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-blog/inkwell/internal/core/auth"
	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

const accessCookie = "accessToken"

// Auth validates the access token and injects its claims into the context.
// The token is taken from the Authorization bearer header, or from the
// accessToken cookie set at login.
func Auth(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				if cookie, err := c.Cookie(accessCookie); err == nil {
					raw = cookie.Value
				}
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication token")
			}

			claims, err := tokens.VerifyAccess(raw)
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", claims.Subject)
			c.Set("username", claims.Username)
			c.Set("email", claims.Email)
			c.Set("full_name", claims.FullName)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
