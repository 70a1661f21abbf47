package ports

import (
	"context"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

// Actor identifies who is performing an operation, as decoded from the
// access token by the auth middleware.
type Actor struct {
	UserID string
	Role   domain.Role
}

// RequestMeta carries the request origin recorded in the activity trail.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// CreateVehicleInput carries all data needed to create a new listing.
// Approval status is not an input: every new listing starts pending.
type CreateVehicleInput struct {
	Brand        string
	Model        string
	Year         int
	Price        float64
	Mileage      int
	Color        string
	FuelType     string
	Transmission string
	Description  string
	Status       domain.VehicleStatus
}

// UpdateVehicleInput carries optional field updates. Nil pointers leave the
// field untouched; the applied diff is recorded in the activity trail.
type UpdateVehicleInput struct {
	Brand        *string
	Model        *string
	Year         *int
	Price        *float64
	Mileage      *int
	Color        *string
	FuelType     *string
	Transmission *string
	Description  *string
	Status       *domain.VehicleStatus
}

// ListVehiclesInput carries all parameters for the list endpoint.
type ListVehiclesInput struct {
	Actor          Actor
	Status         string
	ApprovalStatus string
	Search         string
	Page           int
	Limit          int
}

// ListVehiclesResult is returned by ListVehicles.
type ListVehiclesResult struct {
	Items      []*domain.Vehicle
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// VehicleService defines use-case operations for listings, including the
// approval workflow.
type VehicleService interface {
	Create(ctx context.Context, actor Actor, meta RequestMeta, in CreateVehicleInput) (*domain.Vehicle, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Vehicle, error)
	List(ctx context.Context, in ListVehiclesInput) (*ListVehiclesResult, error)
	Update(ctx context.Context, actor Actor, meta RequestMeta, id string, in UpdateVehicleInput) (*domain.Vehicle, error)
	// RequestApproval moves a pending or rejected listing (back) to pending.
	// Owner-or-admin only; approved listings fail with ErrInvalidTransition.
	RequestApproval(ctx context.Context, actor Actor, meta RequestMeta, id string) (*domain.Vehicle, error)
	// SetApprovalStatus is the admin override: any target state, any time.
	SetApprovalStatus(ctx context.Context, actor Actor, meta RequestMeta, id string, status domain.ApprovalStatus) (*domain.Vehicle, error)
}
