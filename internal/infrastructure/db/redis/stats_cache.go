package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

const (
	statsKey = "stats:sales_summary"
	statsTTL = 30 * time.Second
)

// StatsCache stores a JSON snapshot of the sales summary in Redis with a
// short TTL, keeping the aggregation query off the hot path.
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached summary, or (nil, nil) on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*ports.SalesSummary, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var summary ports.SalesSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &summary, nil
}

// Set stores the summary snapshot, expiring after statsTTL.
func (c *StatsCache) Set(ctx context.Context, summary *ports.SalesSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, statsKey, raw, statsTTL).Err()
}
