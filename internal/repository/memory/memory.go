// Package memory provides a mutex-guarded in-memory implementation of the
// repository interfaces, used for tests and for running the server without
// a database (STORAGE_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/davidmesa/ventrack/internal/domain"
)

// Store holds all three record types behind a single RWMutex so the
// dashboard snapshot can read both ledgers in one consistent pass.
type Store struct {
	mu          sync.RWMutex
	clients     map[string]domain.Client
	clientOrder []string
	sales       map[string]domain.Sale
	saleOrder   []string
	expenses    map[string]domain.Expense
	expOrder    []string
}

func NewStore() *Store {
	return &Store{
		clients:  map[string]domain.Client{},
		sales:    map[string]domain.Sale{},
		expenses: map[string]domain.Expense{},
	}
}

func (s *Store) CreateClient(ctx context.Context, client *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[client.ID] = *client
	s.clientOrder = append(s.clientOrder, client.ID)
	return nil
}

func (s *Store) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[id]
	if !ok {
		return nil, domain.NewNotFound("client", id)
	}
	return &client, nil
}

func (s *Store) ListClients(ctx context.Context) ([]domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]domain.Client, 0, len(s.clientOrder))
	for _, id := range s.clientOrder {
		clients = append(clients, s.clients[id])
	}
	return clients, nil
}

func (s *Store) CreateSale(ctx context.Context, sale *domain.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales[sale.ID] = *sale
	s.saleOrder = append(s.saleOrder, sale.ID)
	return nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := s.sales[id]
	if !ok {
		return nil, domain.NewNotFound("sale", id)
	}
	return &sale, nil
}

// ResolveSale applies the resolution under the write lock, which serializes
// concurrent resolutions of the same sale; the last committed one wins.
func (s *Store) ResolveSale(ctx context.Context, id string, res domain.DeliveryResolution) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.sales[id]
	if !ok {
		return nil, domain.NewNotFound("sale", id)
	}
	if err := sale.Resolve(res, time.Now().UTC()); err != nil {
		return nil, err
	}
	s.sales[id] = sale
	return &sale, nil
}

func (s *Store) ListPendingSales(ctx context.Context) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pendingLocked(), nil
}

func (s *Store) ListSalesInRange(ctx context.Context, from, to *domain.Date) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.salesInRangeLocked(from, to), nil
}

func (s *Store) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses[expense.ID] = *expense
	s.expOrder = append(s.expOrder, expense.ID)
	return nil
}

func (s *Store) ListExpensesOverlapping(ctx context.Context, from, to *domain.Date) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.expensesOverlappingLocked(from, to), nil
}

// SnapshotLedgers reads sales and expenses under one RLock so the
// aggregator never observes a half-applied write.
func (s *Store) SnapshotLedgers(ctx context.Context, from, to *domain.Date) ([]domain.Sale, []domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.salesInRangeLocked(from, to), s.expensesOverlappingLocked(from, to), nil
}

func (s *Store) pendingLocked() []domain.Sale {
	pending := make([]domain.Sale, 0)
	for _, id := range s.saleOrder {
		if sale := s.sales[id]; sale.Status == domain.DeliveryPending {
			pending = append(pending, sale)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].SaleDate.Time.Before(pending[j].SaleDate.Time)
	})
	return pending
}

func (s *Store) salesInRangeLocked(from, to *domain.Date) []domain.Sale {
	rng := domain.DateRange{From: from, To: to}
	sales := make([]domain.Sale, 0, len(s.saleOrder))
	for _, id := range s.saleOrder {
		sale := s.sales[id]
		if rng.Contains(sale.SaleDate) {
			sales = append(sales, sale)
		}
	}
	// Sale-date ascending with insertion order as tiebreak keeps the
	// first-seen guarantees of the per-product breakdown deterministic.
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].SaleDate.Time.Before(sales[j].SaleDate.Time)
	})
	return sales
}

func (s *Store) expensesOverlappingLocked(from, to *domain.Date) []domain.Expense {
	expenses := make([]domain.Expense, 0, len(s.expOrder))
	for _, id := range s.expOrder {
		expense := s.expenses[id]
		if expense.Overlaps(from, to) {
			expenses = append(expenses, expense)
		}
	}
	return expenses
}
