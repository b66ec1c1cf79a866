package tests

import (
	"context"
	"testing"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
	"bikerental/internal/service"
)

// ──────────────────────────────────────────────
// 5. FLEET MANAGEMENT
// ──────────────────────────────────────────────

func TestRegisterBike_DuplicateSerialRejected(t *testing.T) {
	t.Parallel()

	bikeRepo := NewMockBikeRepository()
	bikes := service.NewBikeService(bikeRepo)
	ctx := context.Background()

	first, err := bikes.Register(ctx, service.RegisterBikeRequest{
		Model:        "Trek Marlin",
		SerialNumber: "TR-001",
		Type:         domain.BikeTypeMountain,
		PricePerHour: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != domain.BikeStatusAvailable {
		t.Errorf("new bike status = %s, want Available", first.Status)
	}

	_, err = bikes.Register(ctx, service.RegisterBikeRequest{
		Model:        "Trek Marlin 2",
		SerialNumber: "TR-001",
		Type:         domain.BikeTypeMountain,
		PricePerHour: 60,
	})
	if err != service.ErrDuplicateSerial {
		t.Fatalf("expected ErrDuplicateSerial, got %v", err)
	}
}

func TestRegisterBike_Validation(t *testing.T) {
	t.Parallel()

	bikes := service.NewBikeService(NewMockBikeRepository())
	ctx := context.Background()

	cases := []struct {
		label string
		req   service.RegisterBikeRequest
		want  error
	}{
		{"empty model", service.RegisterBikeRequest{SerialNumber: "S1", Type: domain.BikeTypeCity, PricePerHour: 10}, service.ErrInvalidModel},
		{"empty serial", service.RegisterBikeRequest{Model: "M", Type: domain.BikeTypeCity, PricePerHour: 10}, service.ErrInvalidSerial},
		{"bad type", service.RegisterBikeRequest{Model: "M", SerialNumber: "S1", Type: "Unicycle", PricePerHour: 10}, service.ErrInvalidBikeType},
		{"zero price", service.RegisterBikeRequest{Model: "M", SerialNumber: "S1", Type: domain.BikeTypeCity}, service.ErrInvalidPrice},
	}

	for _, c := range cases {
		if _, err := bikes.Register(ctx, c.req); err != c.want {
			t.Errorf("%s: got %v, want %v", c.label, err, c.want)
		}
	}
}

func TestUpdateBike_RentedBikeLocked(t *testing.T) {
	t.Parallel()

	bikeRepo := NewMockBikeRepository()
	bikeRepo.AddBike(&domain.Bike{
		ID:           "bike-1",
		Model:        "Trek Marlin",
		SerialNumber: "TR-001",
		Type:         domain.BikeTypeMountain,
		Status:       domain.BikeStatusRented,
		PricePerHour: 50,
	})

	bikes := service.NewBikeService(bikeRepo)

	_, err := bikes.Update(context.Background(), service.UpdateBikeRequest{
		BikeID:       "bike-1",
		Model:        "Trek Marlin Gen 3",
		SerialNumber: "TR-001",
		Type:         domain.BikeTypeMountain,
		PricePerHour: 55,
	})
	if err != service.ErrBikeRented {
		t.Fatalf("expected ErrBikeRented, got %v", err)
	}

	if err := bikes.Delete(context.Background(), "bike-1"); err != service.ErrBikeRented {
		t.Fatalf("expected ErrBikeRented on delete, got %v", err)
	}
}

func TestChangeBikeStatus_Maintenance(t *testing.T) {
	t.Parallel()

	bikeRepo := NewMockBikeRepository()
	bikeRepo.AddBike(&domain.Bike{ID: "bike-1", Status: domain.BikeStatusAvailable})

	bikes := service.NewBikeService(bikeRepo)

	if err := bikes.ChangeStatus(context.Background(), "bike-1", domain.BikeStatusMaintenance); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := bikeRepo.GetBike("bike-1").Status; got != domain.BikeStatusMaintenance {
		t.Errorf("status = %s, want Maintenance", got)
	}

	if err := bikes.ChangeStatus(context.Background(), "bike-1", "Broken"); err != service.ErrInvalidBikeStatus {
		t.Errorf("expected ErrInvalidBikeStatus, got %v", err)
	}
}

func TestSearchBikes_FilterByTypeAndStatus(t *testing.T) {
	t.Parallel()

	bikeRepo := NewMockBikeRepository()
	bikeRepo.AddBike(&domain.Bike{ID: "b1", Model: "Trek Marlin", SerialNumber: "TR-1", Type: domain.BikeTypeMountain, Status: domain.BikeStatusAvailable})
	bikeRepo.AddBike(&domain.Bike{ID: "b2", Model: "Giant Escape", SerialNumber: "GI-1", Type: domain.BikeTypeCity, Status: domain.BikeStatusAvailable})
	bikeRepo.AddBike(&domain.Bike{ID: "b3", Model: "Trek FX", SerialNumber: "TR-2", Type: domain.BikeTypeCity, Status: domain.BikeStatusRented})

	bikes := service.NewBikeService(bikeRepo)
	ctx := context.Background()

	result, err := bikes.Search(ctx, repository.BikeFilter{Query: "trek"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("trek matches = %d, want 2", len(result))
	}

	result, err = bikes.Search(ctx, repository.BikeFilter{Type: domain.BikeTypeCity, Status: domain.BikeStatusAvailable})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || result[0].ID != "b2" {
		t.Errorf("expected only b2, got %d matches", len(result))
	}
}

func TestClientHistory_RequiresExistingClient(t *testing.T) {
	t.Parallel()

	clients := service.NewClientService(NewMockClientRepository(), NewMockRentalRepository())

	_, err := clients.History(context.Background(), "missing")
	if err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
