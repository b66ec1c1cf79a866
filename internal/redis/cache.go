package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"bikerental/internal/domain"
)

// StatsCache caches the dashboard summary in Redis so frequent dashboard
// polls do not hit the database.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

const statsKey = "cache:dashboard:stats"

// NewStatsCache creates a new StatsCache with the given entry TTL.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get retrieves the cached dashboard stats. Returns nil on cache miss.
func (s *StatsCache) Get(ctx context.Context) (*domain.DashboardStats, error) {
	data, err := s.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Set stores the dashboard stats.
func (s *StatsCache) Set(ctx context.Context, stats *domain.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, statsKey, data, s.ttl).Err()
}
