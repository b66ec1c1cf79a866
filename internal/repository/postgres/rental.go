package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// RentalRepository is a PostgreSQL implementation of repository.RentalRepository.
type RentalRepository struct {
	q Querier
}

// NewRentalRepository creates a new PostgreSQL rental repository.
func NewRentalRepository(db *sql.DB) *RentalRepository {
	return &RentalRepository{q: db}
}

// NewRentalRepositoryWithTx creates a rental repository using a transaction.
func NewRentalRepositoryWithTx(tx *sql.Tx) *RentalRepository {
	return &RentalRepository{q: tx}
}

const rentalColumns = `id, client_id, bike_id, start_time, duration, end_time, status, base_cost, penalty_cost, total_cost, discount, billed_intervals, created_at`

// Create persists a new rental.
func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	query := `
		INSERT INTO rentals (` + rentalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var endTime sql.NullTime
	if !rental.EndTime.IsZero() {
		endTime = sql.NullTime{Time: rental.EndTime, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		rental.ID,
		rental.ClientID,
		rental.BikeID,
		rental.StartTime,
		rental.DurationHours,
		endTime,
		rental.Status,
		rental.BaseCost,
		rental.PenaltyCost,
		rental.TotalCost,
		rental.DiscountPercent,
		rental.BilledIntervals,
		rental.CreatedAt,
	)

	return err
}

// GetByID retrieves a rental by ID.
func (r *RentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`

	return r.getRental(ctx, query, id)
}

// GetByIDForUpdate retrieves a rental by ID, locking the row until the
// surrounding transaction ends.
func (r *RentalRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`

	return r.getRental(ctx, query, id)
}

// GetActive retrieves all rentals that have not been completed.
func (r *RentalRepository) GetActive(ctx context.Context) ([]*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 ORDER BY start_time`

	rows, err := r.q.QueryContext(ctx, query, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []*domain.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}

	return rentals, rows.Err()
}

// GetHistoryByClientID retrieves a client's rentals, newest first, joined
// with the bike model.
func (r *RentalRepository) GetHistoryByClientID(ctx context.Context, clientID string) ([]*domain.RentalHistoryEntry, error) {
	query := `
		SELECT r.id, r.client_id, r.bike_id, r.start_time, r.duration, r.end_time, r.status,
		       r.base_cost, r.penalty_cost, r.total_cost, r.discount, r.billed_intervals, r.created_at,
		       COALESCE(b.model, '')
		FROM rentals r
		LEFT JOIN bikes b ON r.bike_id = b.id
		WHERE r.client_id = $1
		ORDER BY r.start_time DESC
	`

	rows, err := r.q.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.RentalHistoryEntry
	for rows.Next() {
		var entry domain.RentalHistoryEntry
		var endTime sql.NullTime
		if err := rows.Scan(
			&entry.ID,
			&entry.ClientID,
			&entry.BikeID,
			&entry.StartTime,
			&entry.DurationHours,
			&endTime,
			&entry.Status,
			&entry.BaseCost,
			&entry.PenaltyCost,
			&entry.TotalCost,
			&entry.DiscountPercent,
			&entry.BilledIntervals,
			&entry.CreatedAt,
			&entry.BikeModel,
		); err != nil {
			return nil, err
		}
		if endTime.Valid {
			entry.EndTime = endTime.Time
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Update updates an existing rental.
func (r *RentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	query := `
		UPDATE rentals
		SET client_id = $1, bike_id = $2, start_time = $3, duration = $4, end_time = $5,
		    status = $6, base_cost = $7, penalty_cost = $8, total_cost = $9, discount = $10,
		    billed_intervals = $11
		WHERE id = $12
	`

	var endTime sql.NullTime
	if !rental.EndTime.IsZero() {
		endTime = sql.NullTime{Time: rental.EndTime, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		rental.ClientID,
		rental.BikeID,
		rental.StartTime,
		rental.DurationHours,
		endTime,
		rental.Status,
		rental.BaseCost,
		rental.PenaltyCost,
		rental.TotalCost,
		rental.DiscountPercent,
		rental.BilledIntervals,
		rental.ID,
	)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// AddPenalty atomically accrues a late penalty on an active rental and
// records how many overdue intervals have been billed. A single statement
// so concurrent sweeps cannot double-apply the same delta.
func (r *RentalRepository) AddPenalty(ctx context.Context, id string, amount float64, billedIntervals int) error {
	query := `
		UPDATE rentals
		SET penalty_cost = penalty_cost + $1,
		    total_cost = total_cost + $1,
		    billed_intervals = $2
		WHERE id = $3 AND status = $4 AND billed_intervals < $2
	`

	result, err := r.q.ExecContext(ctx, query, amount, billedIntervals, id, domain.RentalStatusActive)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// IncomeForDay sums the total cost of rentals completed on the given day.
func (r *RentalRepository) IncomeForDay(ctx context.Context, day time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_cost), 0)
		FROM rentals
		WHERE status = $1 AND end_time::date = $2::date
	`

	var income float64
	err := r.q.QueryRowContext(ctx, query, domain.RentalStatusCompleted, day).Scan(&income)
	if err != nil {
		return 0, err
	}

	return income, nil
}

// Delete removes a rental.
func (r *RentalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *RentalRepository) getRental(ctx context.Context, query, id string) (*domain.Rental, error) {
	rental, err := scanRentalRow(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return rental, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRentalInto(s scanner) (*domain.Rental, error) {
	var rental domain.Rental
	var endTime sql.NullTime

	err := s.Scan(
		&rental.ID,
		&rental.ClientID,
		&rental.BikeID,
		&rental.StartTime,
		&rental.DurationHours,
		&endTime,
		&rental.Status,
		&rental.BaseCost,
		&rental.PenaltyCost,
		&rental.TotalCost,
		&rental.DiscountPercent,
		&rental.BilledIntervals,
		&rental.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		rental.EndTime = endTime.Time
	}

	return &rental, nil
}

func scanRental(rows *sql.Rows) (*domain.Rental, error) {
	return scanRentalInto(rows)
}

func scanRentalRow(row *sql.Row) (*domain.Rental, error) {
	return scanRentalInto(row)
}

// Ensure RentalRepository implements repository.RentalRepository.
var _ repository.RentalRepository = (*RentalRepository)(nil)
