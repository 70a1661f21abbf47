package handler

import (
	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createVehicleRequest) ports.CreateVehicleInput {
	return ports.CreateVehicleInput{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		Color:        req.Color,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Description:  req.Description,
		Status:       domain.VehicleStatus(req.Status),
	}
}

func toUpdateInput(req updateVehicleRequest) ports.UpdateVehicleInput {
	in := ports.UpdateVehicleInput{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		Color:        req.Color,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Description:  req.Description,
	}
	if req.Status != nil {
		status := domain.VehicleStatus(*req.Status)
		in.Status = &status
	}
	return in
}

// --- Domain → HTTP response ---

func toVehicleResponse(v *domain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:                  v.ID,
		Brand:               v.Brand,
		Model:               v.Model,
		Year:                v.Year,
		Price:               v.Price,
		Mileage:             v.Mileage,
		Color:               v.Color,
		FuelType:            v.FuelType,
		Transmission:        v.Transmission,
		Description:         v.Description,
		Status:              string(v.Status),
		ApprovalStatus:      string(v.ApprovalStatus),
		CreatedBy:           v.CreatedBy,
		ApprovalRequestedAt: v.ApprovalRequestedAt.UTC(),
		CreatedAt:           v.CreatedAt.UTC(),
		UpdatedAt:           v.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListVehiclesResult) listVehiclesResponse {
	items := make([]vehicleResponse, len(r.Items))
	for i, v := range r.Items {
		items[i] = toVehicleResponse(v)
	}
	return listVehiclesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
