package service

import (
	"context"
	"math"

	"bikerental/internal/repository"
)

// PricingService computes rental prices from the bike's hourly rate.
type PricingService struct {
	bikeRepo repository.BikeRepository
}

// NewPricingService creates a new PricingService.
func NewPricingService(bikeRepo repository.BikeRepository) *PricingService {
	return &PricingService{bikeRepo: bikeRepo}
}

// Quote computes the price of renting the given bike for durationHours
// with the given discount. Fails only when the bike does not exist;
// duration and discount bounds are the caller's contract.
func (s *PricingService) Quote(ctx context.Context, bikeID string, durationHours int, discountPercent float64) (float64, error) {
	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if err != nil {
		return 0, err
	}

	return Cost(bike.PricePerHour, durationHours, discountPercent), nil
}

// Cost is the pure pricing rule:
// round(rate * hours * (1 - discount/100), 2).
func Cost(ratePerHour float64, durationHours int, discountPercent float64) float64 {
	total := ratePerHour * float64(durationHours)
	total -= total * discountPercent / 100.0
	return round2(total)
}

// LatePenalty is the one-time penalty applied when a rental is completed
// more than the grace period past its expected end: each started overdue
// hour is billed at 1.5x the hourly rate.
func LatePenalty(ratePerHour float64, overdueSeconds int64) float64 {
	penaltyHours := math.Ceil(float64(overdueSeconds) / 3600.0)
	return round2(penaltyHours * ratePerHour * completionPenaltyRate)
}

const completionPenaltyRate = 1.5

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
