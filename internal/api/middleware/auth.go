package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// queryTokenParam is the fallback for clients that cannot set headers
// (embedded document viewers, new-tab opens). A documented exception to
// keeping credentials out of URLs.
const queryTokenParam = "token"

// Auth extracts a bearer token, verifies it, and injects the identity into
// the echo context.
//
// Status codes are deliberately split so the session client knows when a
// silent refresh can help:
//   - no credential at all      → 401 (refresh will not help)
//   - credential present but
//     invalid or expired        → 403 (refresh may yield a usable token)
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractToken(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			claims, err := tokens.VerifyAccess(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusForbidden, "token expired")
				}
				return echo.NewHTTPError(http.StatusForbidden, "token invalid")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", errors.New("invalid authorization header")
		}
		return parts[1], nil
	}

	if token := c.QueryParam(queryTokenParam); token != "" {
		return token, nil
	}

	return "", errors.New("missing credentials")
}
