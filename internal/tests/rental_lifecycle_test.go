package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/service"
)

// ──────────────────────────────────────────────
// 3. RENTAL LIFECYCLE
// ──────────────────────────────────────────────

type lifecycleFixture struct {
	bikeRepo    *MockBikeRepository
	clientRepo  *MockClientRepository
	rentalRepo  *MockRentalRepository
	invoiceRepo *MockInvoiceRepository
	paymentRepo *MockPaymentRepository
	lockStore   *MockLockStore
	notifier    *MockNotifier
	rentals     *service.RentalService
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		bikeRepo:    NewMockBikeRepository(),
		clientRepo:  NewMockClientRepository(),
		rentalRepo:  NewMockRentalRepository(),
		invoiceRepo: NewMockInvoiceRepository(),
		paymentRepo: NewMockPaymentRepository(),
		lockStore:   NewMockLockStore(),
		notifier:    NewMockNotifier(),
	}

	uow := NewMockUnitOfWork(f.bikeRepo, f.clientRepo, f.rentalRepo, f.invoiceRepo, f.paymentRepo)
	f.rentals = service.NewRentalService(uow, f.rentalRepo, f.lockStore, f.notifier)

	f.clientRepo.AddClient(&domain.Client{ID: "client-1", Name: "Anna Smith", Document: "AB 123456"})
	f.bikeRepo.AddBike(&domain.Bike{
		ID:           "bike-1",
		Model:        "Trek Marlin",
		SerialNumber: "TR-001",
		Type:         domain.BikeTypeMountain,
		Status:       domain.BikeStatusAvailable,
		PricePerHour: 50,
	})

	return f
}

func TestCreateRental_FlipsBikeAndRecordsPayment(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()

	rental, err := f.rentals.Create(context.Background(), service.CreateRentalRequest{
		ClientID:      "client-1",
		BikeID:        "bike-1",
		DurationHours: 2,
		PaymentMethod: domain.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rental.TotalCost != 100.00 {
		t.Errorf("total cost = %v, want 100.00", rental.TotalCost)
	}
	if rental.Status != domain.RentalStatusActive {
		t.Errorf("status = %s, want Active", rental.Status)
	}

	if got := f.bikeRepo.GetBike("bike-1").Status; got != domain.BikeStatusRented {
		t.Errorf("bike status = %s, want Rented", got)
	}

	available, _ := f.bikeRepo.GetAvailable(context.Background())
	if len(available) != 0 {
		t.Errorf("expected no available bikes, got %d", len(available))
	}

	if f.invoiceRepo.CountInvoices() != 1 {
		t.Errorf("expected 1 invoice, got %d", f.invoiceRepo.CountInvoices())
	}
	if f.paymentRepo.CountPayments() != 1 {
		t.Errorf("expected 1 payment, got %d", f.paymentRepo.CountPayments())
	}

	invoice, err := f.invoiceRepo.GetByRentalID(context.Background(), rental.ID)
	if err != nil || invoice == nil {
		t.Fatalf("invoice not found: %v", err)
	}
	if invoice.Status != domain.InvoiceStatusPaid {
		t.Errorf("invoice status = %s, want Paid", invoice.Status)
	}

	if f.notifier.CountByType(service.NotificationRentalCreated) != 1 {
		t.Error("expected one rental created notification")
	}
}

func TestCreateRental_RejectsUnavailableBike(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.bikeRepo.AddBike(&domain.Bike{
		ID:           "bike-2",
		Status:       domain.BikeStatusMaintenance,
		PricePerHour: 40,
	})

	_, err := f.rentals.Create(context.Background(), service.CreateRentalRequest{
		ClientID:      "client-1",
		BikeID:        "bike-2",
		DurationHours: 2,
		PaymentMethod: domain.PaymentMethodCash,
	})
	if err != service.ErrBikeNotAvailable {
		t.Fatalf("expected ErrBikeNotAvailable, got %v", err)
	}
}

func TestCreateRental_RejectsBadInputs(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	ctx := context.Background()

	cases := []struct {
		label string
		req   service.CreateRentalRequest
		want  error
	}{
		{"no client", service.CreateRentalRequest{BikeID: "bike-1", DurationHours: 2, PaymentMethod: domain.PaymentMethodCard}, service.ErrInvalidClientID},
		{"no bike", service.CreateRentalRequest{ClientID: "client-1", DurationHours: 2, PaymentMethod: domain.PaymentMethodCard}, service.ErrInvalidBikeID},
		{"zero duration", service.CreateRentalRequest{ClientID: "client-1", BikeID: "bike-1", DurationHours: 0, PaymentMethod: domain.PaymentMethodCard}, service.ErrInvalidDuration},
		{"too long", service.CreateRentalRequest{ClientID: "client-1", BikeID: "bike-1", DurationHours: 73, PaymentMethod: domain.PaymentMethodCard}, service.ErrInvalidDuration},
		{"negative discount", service.CreateRentalRequest{ClientID: "client-1", BikeID: "bike-1", DurationHours: 2, DiscountPercent: -1, PaymentMethod: domain.PaymentMethodCard}, service.ErrInvalidDiscount},
		{"discount over cap", service.CreateRentalRequest{ClientID: "client-1", BikeID: "bike-1", DurationHours: 2, DiscountPercent: 51, PaymentMethod: domain.PaymentMethodCard}, service.ErrInvalidDiscount},
		{"bad method", service.CreateRentalRequest{ClientID: "client-1", BikeID: "bike-1", DurationHours: 2, PaymentMethod: "Barter"}, service.ErrInvalidPaymentMethod},
	}

	for _, c := range cases {
		if _, err := f.rentals.Create(ctx, c.req); err != c.want {
			t.Errorf("%s: got %v, want %v", c.label, err, c.want)
		}
	}

	if f.rentalRepo.CountRentals() != 0 {
		t.Error("rejected requests must not create rentals")
	}
}

func TestCreateRental_PaymentFailurePropagates(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.paymentRepo.CreateError = errors.New("card declined")

	_, err := f.rentals.Create(context.Background(), service.CreateRentalRequest{
		ClientID:      "client-1",
		BikeID:        "bike-1",
		DurationHours: 2,
		PaymentMethod: domain.PaymentMethodCard,
	})
	if err == nil || err.Error() != "card declined" {
		t.Fatalf("expected payment error, got %v", err)
	}

	if f.notifier.CountByType(service.NotificationRentalCreated) != 0 {
		t.Error("failed creation must not notify")
	}
}

func TestCompleteRental_OnTimeHasNoPenalty(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.bikeRepo.GetBike("bike-1").Status = domain.BikeStatusRented
	f.rentalRepo.AddRental(&domain.Rental{
		ID:            "rental-1",
		ClientID:      "client-1",
		BikeID:        "bike-1",
		StartTime:     time.Now().Add(-90 * time.Minute),
		DurationHours: 2,
		Status:        domain.RentalStatusActive,
		BaseCost:      100.00,
		TotalCost:     100.00,
	})

	rental, err := f.rentals.Complete(context.Background(), "rental-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rental.Status != domain.RentalStatusCompleted {
		t.Errorf("status = %s, want Completed", rental.Status)
	}
	if rental.EndTime.IsZero() {
		t.Error("expected end time to be set")
	}
	if rental.PenaltyCost != 0 {
		t.Errorf("penalty = %v, want 0", rental.PenaltyCost)
	}
	if rental.TotalCost != 100.00 {
		t.Errorf("total = %v, want 100.00", rental.TotalCost)
	}

	if got := f.bikeRepo.GetBike("bike-1").Status; got != domain.BikeStatusAvailable {
		t.Errorf("bike status = %s, want Available", got)
	}
	if f.notifier.CountByType(service.NotificationRentalCompleted) != 1 {
		t.Error("expected one rental completed notification")
	}
}

func TestCompleteRental_LateReturnBillsStartedHours(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.bikeRepo.GetBike("bike-1").Status = domain.BikeStatusRented
	// 2-hour rental returned 65 minutes late: two started hours at 1.5x.
	f.rentalRepo.AddRental(&domain.Rental{
		ID:            "rental-1",
		ClientID:      "client-1",
		BikeID:        "bike-1",
		StartTime:     time.Now().Add(-(2*time.Hour + 65*time.Minute)),
		DurationHours: 2,
		Status:        domain.RentalStatusActive,
		BaseCost:      100.00,
		TotalCost:     100.00,
	})

	rental, err := f.rentals.Complete(context.Background(), "rental-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rental.PenaltyCost != 150.00 {
		t.Errorf("penalty = %v, want 150.00 (2h * 50 * 1.5)", rental.PenaltyCost)
	}
	if rental.TotalCost != 250.00 {
		t.Errorf("total = %v, want 250.00", rental.TotalCost)
	}
}

func TestCompleteRental_KeepsAccruedPenalties(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.bikeRepo.GetBike("bike-1").Status = domain.BikeStatusRented
	// Sweep already billed 60.00; return inside the grace window adds nothing.
	f.rentalRepo.AddRental(&domain.Rental{
		ID:              "rental-1",
		ClientID:        "client-1",
		BikeID:          "bike-1",
		StartTime:       time.Now().Add(-(2*time.Hour + 2*time.Minute)),
		DurationHours:   2,
		Status:          domain.RentalStatusActive,
		BaseCost:        100.00,
		PenaltyCost:     60.00,
		TotalCost:       160.00,
		BilledIntervals: 1,
	})

	rental, err := f.rentals.Complete(context.Background(), "rental-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rental.PenaltyCost != 60.00 {
		t.Errorf("penalty = %v, want 60.00 preserved", rental.PenaltyCost)
	}
	if rental.TotalCost != 160.00 {
		t.Errorf("total = %v, want 160.00", rental.TotalCost)
	}
}

func TestCompleteRental_AlreadyCompleted(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.rentalRepo.AddRental(&domain.Rental{
		ID:     "rental-1",
		BikeID: "bike-1",
		Status: domain.RentalStatusCompleted,
	})

	_, err := f.rentals.Complete(context.Background(), "rental-1")
	if err != service.ErrRentalNotActive {
		t.Fatalf("expected ErrRentalNotActive, got %v", err)
	}
}

func TestCompleteRental_LockHeldByAnotherWorker(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.lockStore.DenyAll = true
	f.rentalRepo.AddRental(&domain.Rental{
		ID:     "rental-1",
		BikeID: "bike-1",
		Status: domain.RentalStatusActive,
	})

	_, err := f.rentals.Complete(context.Background(), "rental-1")
	if err != service.ErrRentalBusy {
		t.Fatalf("expected ErrRentalBusy, got %v", err)
	}
	if f.rentalRepo.UpdateCallCount != 0 {
		t.Error("denied lock must not touch the rental")
	}
}

func TestExtendRental_PreservesPenalty(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.rentalRepo.AddRental(&domain.Rental{
		ID:              "rental-1",
		ClientID:        "client-1",
		BikeID:          "bike-1",
		StartTime:       time.Now().Add(-time.Hour),
		DurationHours:   2,
		Status:          domain.RentalStatusActive,
		BaseCost:        100.00,
		PenaltyCost:     60.00,
		TotalCost:       160.00,
		BilledIntervals: 1,
	})

	rental, err := f.rentals.Extend(context.Background(), "rental-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rental.DurationHours != 4 {
		t.Errorf("duration = %d, want 4 (2 + 2 added)", rental.DurationHours)
	}
	if rental.BaseCost != 200.00 {
		t.Errorf("base = %v, want 200.00", rental.BaseCost)
	}
	if rental.PenaltyCost != 60.00 {
		t.Errorf("penalty = %v, want 60.00 preserved", rental.PenaltyCost)
	}
	if rental.TotalCost != 260.00 {
		t.Errorf("total = %v, want 260.00", rental.TotalCost)
	}
}

func TestExtendRental_AddsToCurrentDuration(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.rentalRepo.AddRental(&domain.Rental{
		ID:            "rental-1",
		ClientID:      "client-1",
		BikeID:        "bike-1",
		StartTime:     time.Now(),
		DurationHours: 4,
		Status:        domain.RentalStatusActive,
		BaseCost:      200.00,
		TotalCost:     200.00,
	})

	// Adding fewer hours than the current duration must still grow the
	// rental, never replace the duration with the smaller value.
	rental, err := f.rentals.Extend(context.Background(), "rental-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rental.DurationHours != 6 {
		t.Errorf("duration = %d, want 6 (4 + 2 added)", rental.DurationHours)
	}
	if rental.BaseCost != 300.00 {
		t.Errorf("base = %v, want 300.00", rental.BaseCost)
	}
	if rental.TotalCost < 200.00 {
		t.Errorf("total = %v, must never drop below the pre-extension 200.00", rental.TotalCost)
	}
}

func TestExtendRental_IncreasesTotal(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.rentalRepo.AddRental(&domain.Rental{
		ID:            "rental-1",
		ClientID:      "client-1",
		BikeID:        "bike-1",
		StartTime:     time.Now(),
		DurationHours: 2,
		Status:        domain.RentalStatusActive,
		BaseCost:      100.00,
		TotalCost:     100.00,
	})

	rental, err := f.rentals.Extend(context.Background(), "rental-1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rental.DurationHours != 5 {
		t.Errorf("duration = %d, want 5", rental.DurationHours)
	}
	if rental.TotalCost <= 100.00 {
		t.Errorf("total = %v, want > 100.00", rental.TotalCost)
	}

	if _, err := f.rentals.Extend(context.Background(), "rental-1", 0); err != service.ErrInvalidDuration {
		t.Errorf("zero added hours: got %v, want ErrInvalidDuration", err)
	}
}

func TestCancelRental_RestoresBike(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture()
	f.bikeRepo.GetBike("bike-1").Status = domain.BikeStatusRented
	f.rentalRepo.AddRental(&domain.Rental{
		ID:     "rental-1",
		BikeID: "bike-1",
		Status: domain.RentalStatusActive,
	})

	if err := f.rentals.Cancel(context.Background(), "rental-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.rentalRepo.CountRentals() != 0 {
		t.Error("expected rental to be removed")
	}
	if got := f.bikeRepo.GetBike("bike-1").Status; got != domain.BikeStatusAvailable {
		t.Errorf("bike status = %s, want Available", got)
	}
}
