package redis

import (
	"context"
	"time"

	"bikerental/internal/domain"
)

// StatsCacheInterface defines the interface for dashboard stats caching.
type StatsCacheInterface interface {
	Get(ctx context.Context) (*domain.DashboardStats, error)
	Set(ctx context.Context, stats *domain.DashboardStats) error
}

// LockStoreInterface defines the interface for per-rental locking.
type LockStoreInterface interface {
	AcquireRentalLock(ctx context.Context, rentalID string, ttl time.Duration) (bool, error)
	ReleaseRentalLock(ctx context.Context, rentalID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ StatsCacheInterface = (*StatsCache)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
