package ports

import (
	"context"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

// ListVehiclesFilter carries all query parameters for listing vehicles.
// Visibility scoping is decided by the service layer: for common users the
// repository receives both VisibleTo (their id) and approved-only widening.
type ListVehiclesFilter struct {
	// VisibleTo, when non-empty, widens the result to listings created by
	// this user in addition to approved ones (common-role scoping).
	VisibleTo      string
	Status         string
	ApprovalStatus string
	// Search is a partial, case-insensitive match on brand or model.
	Search string
	Page   int // 1-based
	Limit  int // capped by the service
}

// SalesSummary aggregates the dashboard counters over all listings.
type SalesSummary struct {
	ByStatus       map[domain.VehicleStatus]int64  `json:"by_status"`
	ByApproval     map[domain.ApprovalStatus]int64 `json:"by_approval"`
	SoldCount      int64                           `json:"sold_count"`
	SoldTotalValue float64                         `json:"sold_total_value"`
}

// VehicleRepository defines persistence operations for listings.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	// Update persists the full document and bumps updated_at.
	Update(ctx context.Context, v *domain.Vehicle) error
	List(ctx context.Context, filter ListVehiclesFilter) ([]*domain.Vehicle, int64, error)
	// Summarize computes the sales dashboard aggregates.
	Summarize(ctx context.Context) (*SalesSummary, error)
}
