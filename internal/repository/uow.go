package repository

import "context"

// Repos bundles transaction-scoped repositories handed to a unit of work.
type Repos struct {
	Bikes    BikeRepository
	Clients  ClientRepository
	Rentals  RentalRepository
	Invoices InvoiceRepository
	Payments PaymentRepository
}

// UnitOfWork runs a function against repositories that share one
// transaction. If fn returns an error the transaction is rolled back and
// none of its writes are visible.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}
