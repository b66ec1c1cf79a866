package domain

import "time"

// PaymentMethod represents how a rental was paid.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "Card"
	PaymentMethodCash PaymentMethod = "Cash"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCard || m == PaymentMethodCash
}

// Payment represents a payment recorded against an invoice.
type Payment struct {
	ID             string
	InvoiceID      string
	RentalID       string
	Amount         float64
	PaymentDate    time.Time
	Method         PaymentMethod
	IdempotencyKey string
}
