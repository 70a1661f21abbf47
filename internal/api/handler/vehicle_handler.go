package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

// VehicleHandler handles HTTP requests for listing operations.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// Create handles POST /v1/vehicles.
//
// @Summary      Create a vehicle listing
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVehicleRequest  true  "Listing details"
// @Success      201   {object}  vehicleResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vehicle, err := h.service.Create(c.Request().Context(), actor, requestMeta(c), toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toVehicleResponse(vehicle))
}

// Get handles GET /v1/vehicles/:id.
//
// @Summary      Get a vehicle listing
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle id"
// @Success      200  {object}  vehicleResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/vehicles/{id} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	vehicle, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// List handles GET /v1/vehicles.
//
// @Summary      List vehicle listings
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        status           query     string  false  "Commercial status filter"
// @Param        approval_status  query     string  false  "Approval status filter"
// @Param        search           query     string  false  "Partial match on brand or model"
// @Param        page             query     int     false  "Page (1-based)"
// @Param        limit            query     int     false  "Page size (max 100)"
// @Success      200  {object}  listVehiclesResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListVehiclesInput{
		Actor:          actor,
		Status:         c.QueryParam("status"),
		ApprovalStatus: c.QueryParam("approval_status"),
		Search:         c.QueryParam("search"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Update handles PATCH /v1/vehicles/:id.
//
// @Summary      Update a vehicle listing
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Vehicle id"
// @Param        body  body      updateVehicleRequest  true  "Fields to update"
// @Success      200   {object}  vehicleResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/vehicles/{id} [patch]
func (h *VehicleHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vehicle, err := h.service.Update(c.Request().Context(), actor, requestMeta(c), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// RequestApproval handles POST /v1/vehicles/:id/request-approval.
//
// @Summary      Re-submit a listing for approval
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle id"
// @Success      200  {object}  vehicleResponse
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/vehicles/{id}/request-approval [post]
func (h *VehicleHandler) RequestApproval(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	vehicle, err := h.service.RequestApproval(c.Request().Context(), actor, requestMeta(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// SetApproval handles PATCH /v1/vehicles/:id/approval (admin only).
//
// @Summary      Set a listing's approval status
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Vehicle id"
// @Param        body  body      setApprovalRequest  true  "Target approval status"
// @Success      200   {object}  vehicleResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/vehicles/{id}/approval [patch]
func (h *VehicleHandler) SetApproval(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setApprovalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vehicle, err := h.service.SetApprovalStatus(c.Request().Context(), actor, requestMeta(c), c.Param("id"), domain.ApprovalStatus(req.ApprovalStatus))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}
