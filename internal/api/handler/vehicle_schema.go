package handler

import "time"

type createVehicleRequest struct {
	Brand        string  `json:"brand" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required,gte=1900"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Mileage      int     `json:"mileage" validate:"gte=0"`
	Color        string  `json:"color"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`
	Description  string  `json:"description"`
	Status       string  `json:"status" validate:"omitempty,oneof=available reserved sold"`
}

type updateVehicleRequest struct {
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year" validate:"omitempty,gte=1900"`
	Price        *float64 `json:"price" validate:"omitempty,gt=0"`
	Mileage      *int     `json:"mileage" validate:"omitempty,gte=0"`
	Color        *string  `json:"color"`
	FuelType     *string  `json:"fuel_type"`
	Transmission *string  `json:"transmission"`
	Description  *string  `json:"description"`
	Status       *string  `json:"status" validate:"omitempty,oneof=available reserved sold"`
}

type setApprovalRequest struct {
	ApprovalStatus string `json:"approval_status" validate:"required,oneof=pending approved rejected"`
}

type vehicleResponse struct {
	ID                  string    `json:"id"`
	Brand               string    `json:"brand"`
	Model               string    `json:"model"`
	Year                int       `json:"year"`
	Price               float64   `json:"price"`
	Mileage             int       `json:"mileage"`
	Color               string    `json:"color,omitempty"`
	FuelType            string    `json:"fuel_type,omitempty"`
	Transmission        string    `json:"transmission,omitempty"`
	Description         string    `json:"description,omitempty"`
	Status              string    `json:"status"`
	ApprovalStatus      string    `json:"approval_status"`
	CreatedBy           string    `json:"created_by"`
	ApprovalRequestedAt time.Time `json:"approval_requested_at,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listVehiclesResponse struct {
	Data       []vehicleResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
