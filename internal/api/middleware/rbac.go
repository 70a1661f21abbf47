package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

// RequireRole guards a route behind a set of allowed roles. It must be
// composed after Auth; without an authenticated role in the context every
// request is rejected.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(domain.Role)
			if !role.Valid() {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
