package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

// SummaryCache abstracts the snapshot cache (Redis) in front of the
// aggregation query.
type SummaryCache interface {
	Get(ctx context.Context) (*ports.SalesSummary, error)
	Set(ctx context.Context, summary *ports.SalesSummary) error
}

// StatsService serves the sales dashboard. Aggregates are cached for a
// short TTL; cache errors degrade to a direct repository query.
type StatsService struct {
	repo  ports.VehicleRepository
	cache SummaryCache
	log   zerolog.Logger
}

func NewStatsService(repo ports.VehicleRepository, cache SummaryCache, log zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, cache: cache, log: log}
}

func (s *StatsService) SalesSummary(ctx context.Context) (*ports.SalesSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err != nil {
			s.log.Warn().Err(err).Msg("stats cache read failed, querying repository")
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.repo.Summarize(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache stats snapshot")
		}
	}
	return summary, nil
}
