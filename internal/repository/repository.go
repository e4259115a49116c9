package repository

import (
	"context"

	"github.com/davidmesa/ventrack/internal/domain"
)

// ClientRepository stores customer identities.
type ClientRepository interface {
	CreateClient(ctx context.Context, client *domain.Client) error
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	// ListClients returns all clients in registration order.
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// SaleRepository stores sale records and owns the serialization of
// concurrent resolutions on the same sale id.
type SaleRepository interface {
	CreateSale(ctx context.Context, sale *domain.Sale) error
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	// ResolveSale atomically applies the resolution to the stored sale
	// and returns the updated record. Concurrent calls on the same id
	// serialize, last committed wins.
	ResolveSale(ctx context.Context, id string, res domain.DeliveryResolution) (*domain.Sale, error)
	// ListPendingSales returns unresolved sales ordered by sale date
	// ascending, oldest first.
	ListPendingSales(ctx context.Context) ([]domain.Sale, error)
	// ListSalesInRange returns sales whose sale date falls within the
	// inclusive range; nil bounds are open.
	ListSalesInRange(ctx context.Context, from, to *domain.Date) ([]domain.Sale, error)
}

// ExpenseRepository stores advertising expenses.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) error
	// ListExpensesOverlapping returns expenses whose interval intersects
	// the window; nil bounds are open.
	ListExpensesOverlapping(ctx context.Context, from, to *domain.Date) ([]domain.Expense, error)
}

// LedgerReader reads both ledgers as one consistent snapshot for the
// dashboard aggregator: sales in range plus expenses overlapping the
// window, taken so that no concurrent write can produce a torn read.
type LedgerReader interface {
	SnapshotLedgers(ctx context.Context, from, to *domain.Date) ([]domain.Sale, []domain.Expense, error)
}
