package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// BikeRepository is a PostgreSQL implementation of repository.BikeRepository.
type BikeRepository struct {
	q Querier
}

// NewBikeRepository creates a new PostgreSQL bike repository.
func NewBikeRepository(db *sql.DB) *BikeRepository {
	return &BikeRepository{q: db}
}

// NewBikeRepositoryWithTx creates a bike repository using a transaction.
func NewBikeRepositoryWithTx(tx *sql.Tx) *BikeRepository {
	return &BikeRepository{q: tx}
}

const bikeColumns = `id, model, serial_number, type, status, price_per_hour`

// Create persists a new bike.
func (r *BikeRepository) Create(ctx context.Context, bike *domain.Bike) error {
	query := `
		INSERT INTO bikes (id, model, serial_number, type, status, price_per_hour)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		bike.ID,
		bike.Model,
		bike.SerialNumber,
		bike.Type,
		bike.Status,
		bike.PricePerHour,
	)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicate
	}

	return err
}

// GetByID retrieves a bike by ID.
func (r *BikeRepository) GetByID(ctx context.Context, id string) (*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE id = $1`

	bike, err := scanBike(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return bike, nil
}

// GetBySerial retrieves a bike by serial number.
// Returns nil if no bike has the given serial.
func (r *BikeRepository) GetBySerial(ctx context.Context, serial string) (*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE serial_number = $1`

	bike, err := scanBike(r.q.QueryRowContext(ctx, query, serial))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return bike, nil
}

// GetAll retrieves all bikes.
func (r *BikeRepository) GetAll(ctx context.Context) ([]*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes ORDER BY model, serial_number`

	return r.queryBikes(ctx, query)
}

// GetAvailable retrieves all bikes currently available for rent.
func (r *BikeRepository) GetAvailable(ctx context.Context) ([]*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE status = $1 ORDER BY model, serial_number`

	return r.queryBikes(ctx, query, domain.BikeStatusAvailable)
}

// Search retrieves bikes matching the filter. The substring query matches
// model and serial number case-insensitively; type and status narrow the
// result when set.
func (r *BikeRepository) Search(ctx context.Context, filter repository.BikeFilter) ([]*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE 1=1`
	var args []any

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		p := placeholder(len(args))
		query += ` AND (model ILIKE ` + p + ` OR serial_number ILIKE ` + p + `)`
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND type = ` + placeholder(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = ` + placeholder(len(args))
	}
	query += ` ORDER BY model, serial_number`

	return r.queryBikes(ctx, query, args...)
}

// Update updates an existing bike.
func (r *BikeRepository) Update(ctx context.Context, bike *domain.Bike) error {
	query := `
		UPDATE bikes
		SET model = $1, serial_number = $2, type = $3, status = $4, price_per_hour = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		bike.Model,
		bike.SerialNumber,
		bike.Type,
		bike.Status,
		bike.PricePerHour,
		bike.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	return requireRowsAffected(result)
}

// UpdateStatus updates only the status of a bike.
func (r *BikeRepository) UpdateStatus(ctx context.Context, id string, status domain.BikeStatus) error {
	query := `UPDATE bikes SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// Delete removes a bike.
func (r *BikeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM bikes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *BikeRepository) queryBikes(ctx context.Context, query string, args ...any) ([]*domain.Bike, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bikes []*domain.Bike
	for rows.Next() {
		var bike domain.Bike
		if err := rows.Scan(
			&bike.ID,
			&bike.Model,
			&bike.SerialNumber,
			&bike.Type,
			&bike.Status,
			&bike.PricePerHour,
		); err != nil {
			return nil, err
		}
		bikes = append(bikes, &bike)
	}

	return bikes, rows.Err()
}

func scanBike(row *sql.Row) (*domain.Bike, error) {
	var bike domain.Bike
	err := row.Scan(
		&bike.ID,
		&bike.Model,
		&bike.SerialNumber,
		&bike.Type,
		&bike.Status,
		&bike.PricePerHour,
	)
	if err != nil {
		return nil, err
	}
	return &bike, nil
}

// Ensure BikeRepository implements repository.BikeRepository.
var _ repository.BikeRepository = (*BikeRepository)(nil)
