package tests

import (
	"context"
	"testing"

	"bikerental/internal/service"
)

// ──────────────────────────────────────────────
// 2. CLIENT VALIDATION
// ──────────────────────────────────────────────

func TestValidateClient_Accepts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		phone    string
		email    string
		document string
	}{
		{"Anna Smith", "+1 555 123 4567", "anna@example.com", "AB 123456"},
		{"Jean-Pierre Dupont", "", "", "FR-99887766"},
		{"Мария Иванова", "89001234567", "maria@mail.ru", "4510 123456"},
		{"Lee Min Ho", "555-123-9876", "", "K123456"},
	}

	for _, c := range cases {
		if err := service.ValidateClient(c.name, c.phone, c.email, c.document); err != nil {
			t.Errorf("ValidateClient(%q, %q, %q, %q) = %v, want nil", c.name, c.phone, c.email, c.document, err)
		}
	}
}

func TestValidateClient_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label    string
		name     string
		phone    string
		email    string
		document string
		want     error
	}{
		{"empty name", "", "", "", "AB 123", service.ErrInvalidName},
		{"single word name", "Anna", "", "", "AB 123", service.ErrInvalidName},
		{"digits in name", "Anna Sm1th", "", "", "AB 123", service.ErrInvalidName},
		{"short phone", "Anna Smith", "12345", "", "AB 123", service.ErrInvalidPhone},
		{"letters in phone", "Anna Smith", "phone-number", "", "AB 123", service.ErrInvalidPhone},
		{"bad email", "Anna Smith", "", "not-an-email", "AB 123", service.ErrInvalidEmail},
		{"email without tld", "Anna Smith", "", "a@b", "AB 123", service.ErrInvalidEmail},
		{"empty document", "Anna Smith", "", "", "", service.ErrInvalidDocument},
		{"document with symbols", "Anna Smith", "", "", "AB_123!", service.ErrInvalidDocument},
	}

	for _, c := range cases {
		if err := service.ValidateClient(c.name, c.phone, c.email, c.document); err != c.want {
			t.Errorf("%s: got %v, want %v", c.label, err, c.want)
		}
	}
}

func TestClientRegister_ValidationBlocksPersistence(t *testing.T) {
	t.Parallel()

	clientRepo := NewMockClientRepository()
	rentalRepo := NewMockRentalRepository()
	clients := service.NewClientService(clientRepo, rentalRepo)

	_, err := clients.Register(context.Background(), service.RegisterClientRequest{
		Name:     "Anna",
		Document: "AB 123456",
	})
	if err != service.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if clientRepo.CreateCallCount != 0 {
		t.Error("validation failure must not reach the repository")
	}
}

func TestClientRegister_TrimsFields(t *testing.T) {
	t.Parallel()

	clientRepo := NewMockClientRepository()
	clients := service.NewClientService(clientRepo, NewMockRentalRepository())

	client, err := clients.Register(context.Background(), service.RegisterClientRequest{
		Name:     "  Anna Smith  ",
		Phone:    " +1 555 123 4567 ",
		Document: " AB 123456 ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Name != "Anna Smith" {
		t.Errorf("name = %q, want trimmed", client.Name)
	}
	if client.Phone != "+1 555 123 4567" {
		t.Errorf("phone = %q, want trimmed", client.Phone)
	}
	if client.ID == "" {
		t.Error("expected generated id")
	}
}
