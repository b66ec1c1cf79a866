package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// ReportRepository is a PostgreSQL implementation of repository.ReportRepository.
type ReportRepository struct {
	q Querier
}

// NewReportRepository creates a new PostgreSQL report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{q: db}
}

// RentalsInPeriod lists rentals started within the inclusive range.
func (r *ReportRepository) RentalsInPeriod(ctx context.Context, start, end time.Time) ([]*domain.RentalPeriodRow, error) {
	query := `
		SELECT r.id, COALESCE(c.name, ''), COALESCE(b.model, ''),
		       r.start_time, r.duration, r.total_cost, r.status
		FROM rentals r
		LEFT JOIN clients c ON r.client_id = c.id
		LEFT JOIN bikes b ON r.bike_id = b.id
		WHERE r.start_time::date BETWEEN $1::date AND $2::date
		ORDER BY r.start_time
	`

	rows, err := r.q.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.RentalPeriodRow
	for rows.Next() {
		var row domain.RentalPeriodRow
		if err := rows.Scan(
			&row.RentalID,
			&row.ClientName,
			&row.BikeModel,
			&row.StartTime,
			&row.DurationHours,
			&row.TotalCost,
			&row.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// BikeUsage aggregates rental count and average cost per bike model.
func (r *ReportRepository) BikeUsage(ctx context.Context, start, end time.Time) ([]*domain.BikeUsageRow, error) {
	query := `
		SELECT COALESCE(b.model, ''), COUNT(r.id), COALESCE(AVG(r.total_cost), 0)
		FROM rentals r
		LEFT JOIN bikes b ON r.bike_id = b.id
		WHERE r.start_time::date BETWEEN $1::date AND $2::date
		GROUP BY b.model
		ORDER BY COUNT(r.id) DESC
	`

	rows, err := r.q.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.BikeUsageRow
	for rows.Next() {
		var row domain.BikeUsageRow
		if err := rows.Scan(&row.Model, &row.RentalCount, &row.AverageCost); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// IncomeByDay sums completed-rental income per calendar day.
func (r *ReportRepository) IncomeByDay(ctx context.Context, start, end time.Time) ([]*domain.DailyIncomeRow, error) {
	query := `
		SELECT to_char(r.end_time::date, 'YYYY-MM-DD'), SUM(r.total_cost)
		FROM rentals r
		WHERE r.status = $1 AND r.end_time::date BETWEEN $2::date AND $3::date
		GROUP BY r.end_time::date
		ORDER BY r.end_time::date
	`

	rows, err := r.q.QueryContext(ctx, query, domain.RentalStatusCompleted, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.DailyIncomeRow
	for rows.Next() {
		var row domain.DailyIncomeRow
		if err := rows.Scan(&row.Day, &row.Income); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// ClientSpend aggregates rental count and total spend per client.
func (r *ReportRepository) ClientSpend(ctx context.Context, start, end time.Time) ([]*domain.ClientSpendRow, error) {
	query := `
		SELECT c.name, COUNT(r.id), COALESCE(SUM(r.total_cost), 0)
		FROM clients c
		LEFT JOIN rentals r ON c.id = r.client_id
		WHERE r.start_time::date BETWEEN $1::date AND $2::date
		GROUP BY c.name
		ORDER BY COALESCE(SUM(r.total_cost), 0) DESC
	`

	rows, err := r.q.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ClientSpendRow
	for rows.Next() {
		var row domain.ClientSpendRow
		if err := rows.Scan(&row.ClientName, &row.RentalCount, &row.TotalSpent); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// TypePopularity counts rentals per bike type.
func (r *ReportRepository) TypePopularity(ctx context.Context, start, end time.Time) ([]*domain.TypePopularityRow, error) {
	query := `
		SELECT b.type, COUNT(r.id)
		FROM bikes b
		LEFT JOIN rentals r ON b.id = r.bike_id
		WHERE r.start_time::date BETWEEN $1::date AND $2::date
		GROUP BY b.type
		ORDER BY COUNT(r.id) DESC
	`

	rows, err := r.q.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.TypePopularityRow
	for rows.Next() {
		var row domain.TypePopularityRow
		if err := rows.Scan(&row.Type, &row.RentalCount); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// Ensure ReportRepository implements repository.ReportRepository.
var _ repository.ReportRepository = (*ReportRepository)(nil)
