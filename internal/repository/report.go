package repository

import (
	"context"
	"time"

	"bikerental/internal/domain"
)

// ReportRepository defines the aggregate queries behind operational
// reports. All ranges are inclusive calendar-day ranges.
type ReportRepository interface {
	// RentalsInPeriod lists rentals started within the range.
	RentalsInPeriod(ctx context.Context, start, end time.Time) ([]*domain.RentalPeriodRow, error)

	// BikeUsage aggregates rental count and average cost per bike model.
	BikeUsage(ctx context.Context, start, end time.Time) ([]*domain.BikeUsageRow, error)

	// IncomeByDay sums completed-rental income per calendar day.
	IncomeByDay(ctx context.Context, start, end time.Time) ([]*domain.DailyIncomeRow, error)

	// ClientSpend aggregates rental count and total spend per client.
	ClientSpend(ctx context.Context, start, end time.Time) ([]*domain.ClientSpendRow, error)

	// TypePopularity counts rentals per bike type.
	TypePopularity(ctx context.Context, start, end time.Time) ([]*domain.TypePopularityRow, error)
}
