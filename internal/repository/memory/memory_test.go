package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/shopspring/decimal"
)

func newSale(id string, saleDate domain.Date, value string) *domain.Sale {
	return &domain.Sale{
		ID:        id,
		ClientID:  "client-1",
		Product:   "Producto A",
		SaleDate:  saleDate,
		SaleValue: decimal.RequireFromString(value),
		Profit:    decimal.RequireFromString("10"),
		Status:    domain.DeliveryPending,
		LossValue: decimal.Zero,
	}
}

func TestStore_ClientsKeepRegistrationOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, id := range []string{"c-1", "c-2", "c-3"} {
		client := &domain.Client{ID: id, FirstName: "Ana", LastName: "Martínez", Phone: "300"}
		if err := store.CreateClient(ctx, client); err != nil {
			t.Fatalf("CreateClient returned error: %v", err)
		}
	}

	clients, err := store.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients returned error: %v", err)
	}
	if len(clients) != 3 {
		t.Fatalf("ListClients returned %d clients, want 3", len(clients))
	}
	for i, want := range []string{"c-1", "c-2", "c-3"} {
		if clients[i].ID != want {
			t.Errorf("clients[%d].ID = %s, want %s", i, clients[i].ID, want)
		}
	}

	if _, err := store.GetClient(ctx, "missing"); !domain.IsNotFound(err) {
		t.Errorf("GetClient(missing) = %v, want NotFoundError", err)
	}
}

func TestStore_ListPendingSalesOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	newer := newSale("s-newer", domain.NewDate(2024, time.May, 20), "50")
	older := newSale("s-older", domain.NewDate(2024, time.May, 10), "100")
	resolved := newSale("s-done", domain.NewDate(2024, time.May, 1), "80")

	for _, s := range []*domain.Sale{newer, older, resolved} {
		if err := store.CreateSale(ctx, s); err != nil {
			t.Fatalf("CreateSale returned error: %v", err)
		}
	}
	if _, err := store.ResolveSale(ctx, "s-done", domain.DeliveryResolution{Status: domain.DeliveryDelivered}); err != nil {
		t.Fatalf("ResolveSale returned error: %v", err)
	}

	pending, err := store.ListPendingSales(ctx)
	if err != nil {
		t.Fatalf("ListPendingSales returned error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("ListPendingSales returned %d sales, want 2", len(pending))
	}
	if pending[0].ID != "s-older" || pending[1].ID != "s-newer" {
		t.Errorf("pending order = [%s %s], want [s-older s-newer]", pending[0].ID, pending[1].ID)
	}
}

func TestStore_ListSalesInRange(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	inside := newSale("s-in", domain.NewDate(2024, time.May, 15), "50")
	before := newSale("s-before", domain.NewDate(2024, time.April, 30), "50")
	after := newSale("s-after", domain.NewDate(2024, time.June, 1), "50")
	for _, s := range []*domain.Sale{inside, before, after} {
		if err := store.CreateSale(ctx, s); err != nil {
			t.Fatalf("CreateSale returned error: %v", err)
		}
	}

	from := domain.NewDate(2024, time.May, 1)
	to := domain.NewDate(2024, time.May, 31)
	sales, err := store.ListSalesInRange(ctx, &from, &to)
	if err != nil {
		t.Fatalf("ListSalesInRange returned error: %v", err)
	}
	if len(sales) != 1 || sales[0].ID != "s-in" {
		t.Errorf("ListSalesInRange = %v, want only s-in", sales)
	}

	all, err := store.ListSalesInRange(ctx, nil, nil)
	if err != nil {
		t.Fatalf("ListSalesInRange(nil, nil) returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("open range returned %d sales, want 3", len(all))
	}
}

func TestStore_ResolveSaleLastWins(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	sale := newSale("s-1", domain.NewDate(2024, time.May, 10), "100")
	if err := store.CreateSale(ctx, sale); err != nil {
		t.Fatalf("CreateSale returned error: %v", err)
	}

	loss := decimal.RequireFromString("20")
	if _, err := store.ResolveSale(ctx, "s-1", domain.DeliveryResolution{Status: domain.DeliveryReturned, LossValue: loss}); err != nil {
		t.Fatalf("first ResolveSale returned error: %v", err)
	}
	updated, err := store.ResolveSale(ctx, "s-1", domain.DeliveryResolution{Status: domain.DeliveryDelivered})
	if err != nil {
		t.Fatalf("second ResolveSale returned error: %v", err)
	}

	if updated.Status != domain.DeliveryDelivered {
		t.Errorf("Status = %s, want delivered", updated.Status)
	}
	if !updated.LossValue.IsZero() {
		t.Errorf("LossValue = %s, want 0 (no accumulation)", updated.LossValue)
	}
}

func TestStore_ResolveSaleConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	sale := newSale("s-1", domain.NewDate(2024, time.May, 10), "100")
	if err := store.CreateSale(ctx, sale); err != nil {
		t.Fatalf("CreateSale returned error: %v", err)
	}

	loss := decimal.RequireFromString("30")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		delivered := i%2 == 0
		go func() {
			defer wg.Done()
			res := domain.DeliveryResolution{Status: domain.DeliveryReturned, LossValue: loss}
			if delivered {
				res = domain.DeliveryResolution{Status: domain.DeliveryDelivered}
			}
			if _, err := store.ResolveSale(ctx, "s-1", res); err != nil {
				t.Errorf("ResolveSale returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	final, err := store.GetSale(ctx, "s-1")
	if err != nil {
		t.Fatalf("GetSale returned error: %v", err)
	}
	switch final.Status {
	case domain.DeliveryDelivered:
		if !final.LossValue.IsZero() {
			t.Errorf("delivered sale has loss %s", final.LossValue)
		}
	case domain.DeliveryReturned:
		if !final.LossValue.Equal(loss) {
			t.Errorf("returned sale has loss %s, want %s", final.LossValue, loss)
		}
	default:
		t.Errorf("sale left in status %s after resolutions", final.Status)
	}
}

func TestStore_SnapshotLedgers(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.CreateSale(ctx, newSale("s-1", domain.NewDate(2024, time.January, 15), "100")); err != nil {
		t.Fatalf("CreateSale returned error: %v", err)
	}
	expense := &domain.Expense{
		ID:        "e-1",
		Concept:   "Google Ads",
		Amount:    decimal.RequireFromString("150"),
		StartDate: domain.NewDate(2024, time.January, 1),
		EndDate:   domain.NewDate(2024, time.January, 12),
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense returned error: %v", err)
	}

	from := domain.NewDate(2024, time.January, 10)
	to := domain.NewDate(2024, time.January, 20)
	sales, expenses, err := store.SnapshotLedgers(ctx, &from, &to)
	if err != nil {
		t.Fatalf("SnapshotLedgers returned error: %v", err)
	}
	if len(sales) != 1 {
		t.Errorf("snapshot has %d sales, want 1", len(sales))
	}
	if len(expenses) != 1 {
		t.Errorf("snapshot has %d expenses, want 1 (partial overlap)", len(expenses))
	}
}
