package service

import (
	"context"
	"log"
	"sync"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/redis"
	"bikerental/internal/repository"
)

const (
	// BillingInterval is the overdue accrual granularity: every full
	// interval past the expected end is billed once.
	BillingInterval = 30 * time.Minute

	// overduePenaltyRate multiplies the hourly rate for sweep-accrued
	// overdue intervals.
	overduePenaltyRate = 1.2
)

// OverdueMonitor periodically sweeps active rentals, reminds clients whose
// rental just ended and accrues penalties on overdue ones. Billed interval
// counts live on the rental row, so a restart never re-bills an interval.
type OverdueMonitor struct {
	rentalRepo repository.RentalRepository
	clientRepo repository.ClientRepository
	bikeRepo   repository.BikeRepository
	lockStore  redis.LockStoreInterface
	notifier   Notifier
	now        func() time.Time

	mu       sync.Mutex
	reminded map[string]bool
}

// NewOverdueMonitor creates a new OverdueMonitor.
func NewOverdueMonitor(
	rentalRepo repository.RentalRepository,
	clientRepo repository.ClientRepository,
	bikeRepo repository.BikeRepository,
	lockStore redis.LockStoreInterface,
	notifier Notifier,
) *OverdueMonitor {
	return &OverdueMonitor{
		rentalRepo: rentalRepo,
		clientRepo: clientRepo,
		bikeRepo:   bikeRepo,
		lockStore:  lockStore,
		notifier:   notifier,
		now:        time.Now,
		reminded:   make(map[string]bool),
	}
}

// Sweep examines every active rental once. Rentals inside the grace window
// get a single return reminder; rentals past it get penalties for any
// overdue intervals not yet billed. Errors on one rental never stop the
// sweep.
func (m *OverdueMonitor) Sweep(ctx context.Context) error {
	rentals, err := m.rentalRepo.GetActive(ctx)
	if err != nil {
		return err
	}

	now := m.now()
	for _, rental := range rentals {
		overdue := now.Sub(rental.ExpectedEnd())
		if overdue < 0 {
			continue
		}

		if overdue < GracePeriod {
			m.remind(ctx, rental)
			continue
		}

		if err := m.accrue(ctx, rental, overdue); err != nil {
			log.Printf("Failed to accrue overdue penalty for rental %s: %v", rental.ID, err)
		}
	}

	m.prune(rentals)

	return nil
}

// prune drops reminder state for rentals no longer in the active set, so
// the map stays bounded by the live rental count.
func (m *OverdueMonitor) prune(active []*domain.Rental) {
	alive := make(map[string]bool, len(active))
	for _, rental := range active {
		alive[rental.ID] = true
	}

	m.mu.Lock()
	for id := range m.reminded {
		if !alive[id] {
			delete(m.reminded, id)
		}
	}
	m.mu.Unlock()
}

// remind sends the one-time "please return" notification for a rental
// whose time just ran out.
func (m *OverdueMonitor) remind(ctx context.Context, rental *domain.Rental) {
	m.mu.Lock()
	if m.reminded[rental.ID] {
		m.mu.Unlock()
		return
	}
	m.reminded[rental.ID] = true
	m.mu.Unlock()

	clientName, bikeModel := m.names(ctx, rental)
	if err := m.notifier.Notify(ctx, ReturnDueNotification(rental.ID, clientName, bikeModel)); err != nil {
		log.Printf("Failed to send return reminder for rental %s: %v", rental.ID, err)
	}
}

// accrue bills the overdue intervals that have elapsed but were not yet
// charged, and notifies the client with the cumulative totals. Billing and
// notification are coupled: no new interval, no message.
func (m *OverdueMonitor) accrue(ctx context.Context, rental *domain.Rental, overdue time.Duration) error {
	intervals := int(overdue / BillingInterval)
	if intervals <= rental.BilledIntervals {
		return nil
	}

	acquired, err := m.lockStore.AcquireRentalLock(ctx, rental.ID, rentalLockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		// Another worker or a completion call holds the rental; the next
		// sweep will pick the intervals up.
		return nil
	}
	defer m.lockStore.ReleaseRentalLock(ctx, rental.ID)

	bike, err := m.bikeRepo.GetByID(ctx, rental.BikeID)
	if err != nil {
		return err
	}

	delta := intervals - rental.BilledIntervals
	penalty := round2(float64(delta) * bike.PricePerHour * overduePenaltyRate)

	if err := m.rentalRepo.AddPenalty(ctx, rental.ID, penalty, intervals); err != nil {
		if err == repository.ErrNotFound {
			// Completed or already billed by a concurrent worker.
			return nil
		}
		return err
	}

	clientName, bikeModel := m.names(ctx, rental)
	totalPenalty := round2(rental.PenaltyCost + penalty)
	n := OverdueNotification(rental.ID, clientName, bikeModel, overdue.Hours(), totalPenalty)
	if err := m.notifier.Notify(ctx, n); err != nil {
		log.Printf("Failed to send overdue notification for rental %s: %v", rental.ID, err)
	}

	return nil
}

func (m *OverdueMonitor) names(ctx context.Context, rental *domain.Rental) (string, string) {
	clientName := "client"
	if client, err := m.clientRepo.GetByID(ctx, rental.ClientID); err == nil {
		clientName = client.Name
	}

	bikeModel := "bike"
	if bike, err := m.bikeRepo.GetByID(ctx, rental.BikeID); err == nil {
		bikeModel = bike.Model
	}

	return clientName, bikeModel
}
