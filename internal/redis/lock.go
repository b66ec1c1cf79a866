package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles per-rental locking in Redis. The overdue sweep and
// rental completion both mutate a rental's accrued cost; the lock keeps
// their read-modify-write sequences from interleaving.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireRentalLock attempts to acquire a lock for the given rental.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireRentalLock(ctx context.Context, rentalID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:rental:%s", rentalID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseRentalLock releases the lock for the given rental.
func (s *LockStore) ReleaseRentalLock(ctx context.Context, rentalID string) error {
	key := fmt.Sprintf("lock:rental:%s", rentalID)

	return s.client.Del(ctx, key).Err()
}
