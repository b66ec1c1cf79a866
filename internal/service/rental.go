package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"bikerental/internal/domain"
	"bikerental/internal/redis"
	"bikerental/internal/repository"
)

const (
	// MinRentalHours and MaxRentalHours bound the rental duration.
	MinRentalHours = 1
	MaxRentalHours = 72

	// MaxDiscountPercent caps the discount a rental can carry.
	MaxDiscountPercent = 50.0

	// rentalLockTTL bounds how long a crashed holder can block a rental.
	rentalLockTTL = 30 * time.Second
)

// GracePeriod is how far past the expected end a return still counts as
// on time.
const GracePeriod = 5 * time.Minute

// RentalService orchestrates the rental lifecycle: creation with upfront
// payment, completion with late penalties, extension and cancellation.
type RentalService struct {
	uow        repository.UnitOfWork
	rentalRepo repository.RentalRepository
	lockStore  redis.LockStoreInterface
	notifier   Notifier
	now        func() time.Time
}

// NewRentalService creates a new RentalService.
func NewRentalService(uow repository.UnitOfWork, rentalRepo repository.RentalRepository, lockStore redis.LockStoreInterface, notifier Notifier) *RentalService {
	return &RentalService{
		uow:        uow,
		rentalRepo: rentalRepo,
		lockStore:  lockStore,
		notifier:   notifier,
		now:        time.Now,
	}
}

// CreateRentalRequest contains the parameters for creating a rental.
// StartTime defaults to the current time when zero.
type CreateRentalRequest struct {
	ClientID        string
	BikeID          string
	StartTime       time.Time
	DurationHours   int
	DiscountPercent float64
	PaymentMethod   domain.PaymentMethod
}

// Create starts a rental. The rental row, its invoice, the upfront payment
// and the bike status flip commit in one transaction, so a failed payment
// leaves no half-created rental behind.
func (s *RentalService) Create(ctx context.Context, req CreateRentalRequest) (*domain.Rental, error) {
	if req.ClientID == "" {
		return nil, ErrInvalidClientID
	}
	if req.BikeID == "" {
		return nil, ErrInvalidBikeID
	}
	if req.DurationHours < MinRentalHours || req.DurationHours > MaxRentalHours {
		return nil, ErrInvalidDuration
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > MaxDiscountPercent {
		return nil, ErrInvalidDiscount
	}
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	var rental *domain.Rental

	err := s.uow.Do(ctx, func(r repository.Repos) error {
		if _, err := r.Clients.GetByID(ctx, req.ClientID); err != nil {
			return err
		}

		bike, err := r.Bikes.GetByID(ctx, req.BikeID)
		if err != nil {
			return err
		}
		if bike.Status != domain.BikeStatusAvailable {
			return ErrBikeNotAvailable
		}

		cost := Cost(bike.PricePerHour, req.DurationHours, req.DiscountPercent)
		if cost <= 0 {
			return ErrZeroPrice
		}

		now := s.now()
		start := req.StartTime
		if start.IsZero() {
			start = now
		}

		rental = &domain.Rental{
			ID:              uuid.New().String(),
			ClientID:        req.ClientID,
			BikeID:          req.BikeID,
			StartTime:       start,
			DurationHours:   req.DurationHours,
			Status:          domain.RentalStatusActive,
			BaseCost:        cost,
			TotalCost:       cost,
			DiscountPercent: req.DiscountPercent,
			CreatedAt:       now,
		}
		if err := r.Rentals.Create(ctx, rental); err != nil {
			return err
		}

		invoice := &domain.Invoice{
			ID:          uuid.New().String(),
			RentalID:    rental.ID,
			InvoiceDate: now,
			Amount:      cost,
			Status:      domain.InvoiceStatusPending,
		}
		if err := r.Invoices.Create(ctx, invoice); err != nil {
			return err
		}

		payment := &domain.Payment{
			ID:             uuid.New().String(),
			InvoiceID:      invoice.ID,
			RentalID:       rental.ID,
			Amount:         cost,
			PaymentDate:    now,
			Method:         req.PaymentMethod,
			IdempotencyKey: fmt.Sprintf("payment:%s", rental.ID),
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}

		if err := r.Invoices.UpdateStatus(ctx, invoice.ID, domain.InvoiceStatusPaid); err != nil {
			return err
		}

		return r.Bikes.UpdateStatus(ctx, req.BikeID, domain.BikeStatusRented)
	})
	if err != nil {
		return nil, err
	}

	if notifyErr := s.notifier.Notify(ctx, RentalCreatedNotification(rental.ID, rental.TotalCost)); notifyErr != nil {
		// The rental is committed; a lost notification is not worth failing over.
		log.Printf("Failed to send rental created notification: %v", notifyErr)
	}

	return rental, nil
}

// Complete ends a rental. If the return is more than the grace period past
// the expected end, each started overdue hour is billed at 1.5x the hourly
// rate on top of penalties already accrued by the overdue monitor.
func (s *RentalService) Complete(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if rentalID == "" {
		return nil, ErrInvalidRentalID
	}

	acquired, err := s.lockStore.AcquireRentalLock(ctx, rentalID, rentalLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrRentalBusy
	}
	defer s.lockStore.ReleaseRentalLock(ctx, rentalID)

	var rental *domain.Rental

	err = s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		rental, err = r.Rentals.GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.Status != domain.RentalStatusActive {
			return ErrRentalNotActive
		}

		now := s.now()
		overdue := now.Sub(rental.ExpectedEnd())
		if overdue > GracePeriod {
			bike, err := r.Bikes.GetByID(ctx, rental.BikeID)
			if err != nil {
				return err
			}
			rental.PenaltyCost = round2(rental.PenaltyCost + LatePenalty(bike.PricePerHour, int64(overdue.Seconds())))
		}

		rental.EndTime = now
		rental.Status = domain.RentalStatusCompleted
		rental.TotalCost = round2(rental.BaseCost + rental.PenaltyCost)

		if err := r.Rentals.Update(ctx, rental); err != nil {
			return err
		}

		return r.Bikes.UpdateStatus(ctx, rental.BikeID, domain.BikeStatusAvailable)
	})
	if err != nil {
		return nil, err
	}

	if notifyErr := s.notifier.Notify(ctx, RentalCompletedNotification(rental.ID, rental.TotalCost)); notifyErr != nil {
		log.Printf("Failed to send rental completed notification: %v", notifyErr)
	}

	return rental, nil
}

// Extend adds hours to an active rental. The base cost is recomputed for
// the combined duration at the bike's current rate; penalties already
// accrued are kept, so the total never goes down.
func (s *RentalService) Extend(ctx context.Context, rentalID string, additionalHours int) (*domain.Rental, error) {
	if rentalID == "" {
		return nil, ErrInvalidRentalID
	}
	if additionalHours < MinRentalHours || additionalHours > MaxRentalHours {
		return nil, ErrInvalidDuration
	}

	acquired, err := s.lockStore.AcquireRentalLock(ctx, rentalID, rentalLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrRentalBusy
	}
	defer s.lockStore.ReleaseRentalLock(ctx, rentalID)

	var rental *domain.Rental

	err = s.uow.Do(ctx, func(r repository.Repos) error {
		var err error
		rental, err = r.Rentals.GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.Status != domain.RentalStatusActive {
			return ErrRentalNotActive
		}

		bike, err := r.Bikes.GetByID(ctx, rental.BikeID)
		if err != nil {
			return err
		}

		rental.DurationHours += additionalHours
		rental.BaseCost = Cost(bike.PricePerHour, rental.DurationHours, rental.DiscountPercent)
		rental.TotalCost = round2(rental.BaseCost + rental.PenaltyCost)

		return r.Rentals.Update(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	return rental, nil
}

// Cancel deletes an active rental and puts the bike back in service.
func (s *RentalService) Cancel(ctx context.Context, rentalID string) error {
	if rentalID == "" {
		return ErrInvalidRentalID
	}

	acquired, err := s.lockStore.AcquireRentalLock(ctx, rentalID, rentalLockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrRentalBusy
	}
	defer s.lockStore.ReleaseRentalLock(ctx, rentalID)

	return s.uow.Do(ctx, func(r repository.Repos) error {
		rental, err := r.Rentals.GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.Status != domain.RentalStatusActive {
			return ErrRentalNotActive
		}

		if err := r.Rentals.Delete(ctx, rentalID); err != nil {
			return err
		}

		return r.Bikes.UpdateStatus(ctx, rental.BikeID, domain.BikeStatusAvailable)
	})
}

// GetByID retrieves a rental by id.
func (s *RentalService) GetByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if rentalID == "" {
		return nil, ErrInvalidRentalID
	}

	return s.rentalRepo.GetByID(ctx, rentalID)
}

// GetActive retrieves all active rentals.
func (s *RentalService) GetActive(ctx context.Context) ([]*domain.Rental, error) {
	return s.rentalRepo.GetActive(ctx)
}
