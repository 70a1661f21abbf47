package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

const defaultActivityLimit = 50

// ActivityHandler serves the read side of the audit trail.
type ActivityHandler struct {
	reader ports.ActivityReader
}

func NewActivityHandler(reader ports.ActivityReader) *ActivityHandler {
	return &ActivityHandler{reader: reader}
}

// ListByUser handles GET /v1/activity/users/:id. Common users may only read
// their own trail; admins may read anyone's.
//
// @Summary      Activity trail for a user
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "User id"
// @Param        limit  query     int     false  "Max entries (newest first)"
// @Success      200    {array}   domain.ActivityEntry
// @Failure      403    {object}  map[string]string
// @Router       /v1/activity/users/{id} [get]
func (h *ActivityHandler) ListByUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	targetID := c.Param("id")
	if actor.Role != domain.RoleAdmin && actor.UserID != targetID {
		return domain.ErrForbidden
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	entries, err := h.reader.ListByUser(c.Request().Context(), targetID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ListByVehicle handles GET /v1/activity/vehicles/:id.
//
// @Summary      Activity trail for a vehicle
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Vehicle id"
// @Success      200  {array}  domain.ActivityEntry
// @Router       /v1/activity/vehicles/{id} [get]
func (h *ActivityHandler) ListByVehicle(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	entries, err := h.reader.ListByResource(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
