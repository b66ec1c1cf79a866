package domain

import "time"

// RentalStatus represents the current status of a rental.
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "Active"
	RentalStatusCompleted RentalStatus = "Completed"
)

// Rental represents a bike rental. BaseCost is the discounted duration
// price; PenaltyCost accumulates late fees. TotalCost is always their sum,
// so extending a rental never discards penalties already accrued.
type Rental struct {
	ID              string
	ClientID        string
	BikeID          string
	StartTime       time.Time
	DurationHours   int
	EndTime         time.Time // zero while the rental is active
	Status          RentalStatus
	BaseCost        float64
	PenaltyCost     float64
	TotalCost       float64
	DiscountPercent float64
	// BilledIntervals is the number of 30-minute overdue intervals already
	// billed by the overdue monitor. Persisted so a restarted process does
	// not re-bill intervals it has already charged.
	BilledIntervals int
	CreatedAt       time.Time
}

// ExpectedEnd returns the contractual return deadline.
func (r *Rental) ExpectedEnd() time.Time {
	return r.StartTime.Add(time.Duration(r.DurationHours) * time.Hour)
}

// RentalHistoryEntry is a rental joined with its bike model for client
// history views.
type RentalHistoryEntry struct {
	Rental
	BikeModel string
}
