package domain

import "time"

// RentalPeriodRow is one line of the rentals-in-period report.
type RentalPeriodRow struct {
	RentalID      string
	ClientName    string
	BikeModel     string
	StartTime     time.Time
	DurationHours int
	TotalCost     float64
	Status        string
}

// BikeUsageRow is one line of the bike-usage report.
type BikeUsageRow struct {
	Model       string
	RentalCount int
	AverageCost float64
}

// DailyIncomeRow is one line of the income-by-day report.
type DailyIncomeRow struct {
	Day    string
	Income float64
}

// ClientSpendRow is one line of the client-spend report.
type ClientSpendRow struct {
	ClientName  string
	RentalCount int
	TotalSpent  float64
}

// TypePopularityRow is one line of the type-popularity report.
type TypePopularityRow struct {
	Type        string
	RentalCount int
}

// DashboardStats is the operational summary shown on the dashboard.
type DashboardStats struct {
	AvailableBikes int
	ActiveRentals  int
	Clients        int
	IncomeToday    float64
}
