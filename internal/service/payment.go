package service

import (
	"context"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// PaymentService exposes recorded payments. Payments are created by the
// rental lifecycle; this service only reads them.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, invoiceRepo repository.InvoiceRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
}

// GetAll retrieves all payments, newest first.
func (s *PaymentService) GetAll(ctx context.Context) ([]*domain.Payment, error) {
	return s.paymentRepo.GetAll(ctx)
}

// GetByID retrieves a payment by id.
func (s *PaymentService) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// InvoiceForRental retrieves the invoice issued for a rental, or nil when
// none exists.
func (s *PaymentService) InvoiceForRental(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	if rentalID == "" {
		return nil, ErrInvalidRentalID
	}

	return s.invoiceRepo.GetByRentalID(ctx, rentalID)
}
