package repository

import (
	"context"
	"time"

	"bikerental/internal/domain"
)

// RentalRepository defines the persistence operations for rentals.
type RentalRepository interface {
	// Create persists a new rental.
	Create(ctx context.Context, rental *domain.Rental) error

	// GetByID retrieves a rental by ID.
	GetByID(ctx context.Context, id string) (*domain.Rental, error)

	// GetByIDForUpdate retrieves a rental by ID, locking the row for the
	// duration of the surrounding transaction. Outside a transaction it
	// behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Rental, error)

	// GetActive retrieves all rentals that have not been completed.
	GetActive(ctx context.Context) ([]*domain.Rental, error)

	// GetHistoryByClientID retrieves a client's rentals, newest first,
	// joined with the bike model.
	GetHistoryByClientID(ctx context.Context, clientID string) ([]*domain.RentalHistoryEntry, error)

	// Update updates an existing rental.
	Update(ctx context.Context, rental *domain.Rental) error

	// AddPenalty atomically adds amount to the rental's penalty and total
	// cost and records the number of overdue intervals billed so far.
	// Only active rentals are touched.
	AddPenalty(ctx context.Context, id string, amount float64, billedIntervals int) error

	// IncomeForDay sums the total cost of rentals completed on the given
	// calendar day.
	IncomeForDay(ctx context.Context, day time.Time) (float64, error)

	// Delete removes a rental.
	Delete(ctx context.Context, id string) error
}
