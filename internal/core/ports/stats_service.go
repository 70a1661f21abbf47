package ports

import "context"

// StatsService serves the sales dashboard aggregates, backed by a short-TTL
// cache in front of the vehicle repository.
type StatsService interface {
	SalesSummary(ctx context.Context) (*SalesSummary, error)
}
