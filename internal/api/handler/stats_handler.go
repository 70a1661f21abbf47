package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

// StatsHandler serves the sales dashboard aggregates.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// SalesSummary handles GET /v1/stats/sales.
//
// @Summary      Sales statistics summary
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SalesSummary
// @Failure      401  {object}  map[string]string
// @Router       /v1/stats/sales [get]
func (h *StatsHandler) SalesSummary(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	summary, err := h.service.SalesSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
