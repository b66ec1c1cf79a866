package tests

import (
	"context"
	"testing"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
	"bikerental/internal/service"
)

// ──────────────────────────────────────────────
// 1. PRICING RULES
// ──────────────────────────────────────────────

func TestCost_Deterministic(t *testing.T) {
	t.Parallel()

	if got := service.Cost(50, 3, 0); got != 150.00 {
		t.Errorf("Cost(50, 3, 0) = %v, want 150.00", got)
	}
	if got := service.Cost(50, 3, 10); got != 135.00 {
		t.Errorf("Cost(50, 3, 10) = %v, want 135.00", got)
	}
}

func TestCost_Bounds(t *testing.T) {
	t.Parallel()

	rates := []float64{1, 7.5, 50, 199.99}
	durations := []int{1, 3, 24, 72}
	discounts := []float64{0, 5, 12.5, 50}

	for _, rate := range rates {
		for _, d := range durations {
			for _, disc := range discounts {
				price := service.Cost(rate, d, disc)
				if price < 0 {
					t.Errorf("Cost(%v, %d, %v) = %v, negative", rate, d, disc, price)
				}
				if price > rate*float64(d) {
					t.Errorf("Cost(%v, %d, %v) = %v, exceeds undiscounted price", rate, d, disc, price)
				}
			}
		}
	}
}

func TestCost_RoundsToCents(t *testing.T) {
	t.Parallel()

	// 33.33 * 3 * 0.85 = 84.9915, rounds to 84.99.
	if got := service.Cost(33.33, 3, 15); got != 84.99 {
		t.Errorf("Cost(33.33, 3, 15) = %v, want 84.99", got)
	}
}

func TestLatePenalty_ChargesStartedHours(t *testing.T) {
	t.Parallel()

	// 65 minutes overdue rounds up to 2 hours at 1.5x.
	if got := service.LatePenalty(50, 65*60); got != 150.00 {
		t.Errorf("LatePenalty(50, 65min) = %v, want 150.00", got)
	}

	// A single second into an hour still bills the full hour.
	if got := service.LatePenalty(50, 1); got != 75.00 {
		t.Errorf("LatePenalty(50, 1s) = %v, want 75.00", got)
	}

	// Exactly one hour overdue bills one hour.
	if got := service.LatePenalty(50, 3600); got != 75.00 {
		t.Errorf("LatePenalty(50, 1h) = %v, want 75.00", got)
	}
}

func TestQuote_UsesBikeRate(t *testing.T) {
	t.Parallel()

	bikeRepo := NewMockBikeRepository()
	bikeRepo.AddBike(&domain.Bike{
		ID:           "bike-1",
		Model:        "Trek Marlin",
		Type:         domain.BikeTypeMountain,
		Status:       domain.BikeStatusAvailable,
		PricePerHour: 50,
	})

	pricing := service.NewPricingService(bikeRepo)

	price, err := pricing.Quote(context.Background(), "bike-1", 3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 135.00 {
		t.Errorf("quote = %v, want 135.00", price)
	}
}

func TestQuote_UnknownBike(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(NewMockBikeRepository())

	_, err := pricing.Quote(context.Background(), "missing", 3, 0)
	if err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
