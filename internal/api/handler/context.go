package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anthonycdp/autovision-project-sub001/internal/api/middleware"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

// ctxActor extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a valid role in the context proves
// the middleware ran; without it the handler has nothing to authorize.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(domain.Role)
	if userID == "" || !role.Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{UserID: userID, Role: role}, nil
}

// requestMeta captures the request origin recorded in the activity trail.
func requestMeta(c echo.Context) ports.RequestMeta {
	return ports.RequestMeta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
