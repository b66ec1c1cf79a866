package domain

import "time"

// InvoiceStatus represents the current status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
)

// Invoice represents a bill issued for a rental. Amount snapshots the
// rental's total cost at issuance time.
type Invoice struct {
	ID          string
	RentalID    string
	InvoiceDate time.Time
	Amount      float64
	Status      InvoiceStatus
}
