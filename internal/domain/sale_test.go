package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestSale() Sale {
	return Sale{
		ID:        "sale-1",
		ClientID:  "client-1",
		Product:   "Camiseta",
		SaleDate:  NewDate(2024, time.May, 10),
		SaleValue: dec("100"),
		Profit:    dec("30"),
		Status:    DeliveryPending,
		LossValue: decimal.Zero,
	}
}

func TestSale_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Sale)
		wantErr bool
	}{
		{
			name:   "valid pending sale",
			mutate: func(s *Sale) {},
		},
		{
			name:    "negative sale value",
			mutate:  func(s *Sale) { s.SaleValue = dec("-1") },
			wantErr: true,
		},
		{
			name:    "empty product",
			mutate:  func(s *Sale) { s.Product = "  " },
			wantErr: true,
		},
		{
			name: "delivery date before sale date",
			mutate: func(s *Sale) {
				d := NewDate(2024, time.May, 9)
				s.DeliveryDate = &d
			},
			wantErr: true,
		},
		{
			name: "delivery date equal to sale date",
			mutate: func(s *Sale) {
				d := NewDate(2024, time.May, 10)
				s.DeliveryDate = &d
			},
		},
		{
			name:   "negative profit is allowed",
			mutate: func(s *Sale) { s.Profit = dec("-5") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := newTestSale()
			tt.mutate(&sale)
			err := sale.Validate()
			if tt.wantErr && !IsValidation(err) {
				t.Errorf("Validate() = %v, want ValidationError", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestSale_Resolve(t *testing.T) {
	now := time.Now().UTC()

	t.Run("delivered forces zero loss", func(t *testing.T) {
		sale := newTestSale()
		err := sale.Resolve(DeliveryResolution{Status: DeliveryDelivered, LossValue: dec("15")}, now)
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if sale.Status != DeliveryDelivered {
			t.Errorf("Status = %s, want delivered", sale.Status)
		}
		if !sale.LossValue.IsZero() {
			t.Errorf("LossValue = %s, want 0", sale.LossValue)
		}
	})

	t.Run("returned keeps loss", func(t *testing.T) {
		sale := newTestSale()
		err := sale.Resolve(DeliveryResolution{Status: DeliveryReturned, LossValue: dec("20")}, now)
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if !sale.LossValue.Equal(dec("20")) {
			t.Errorf("LossValue = %s, want 20", sale.LossValue)
		}
	})

	t.Run("loss exceeding sale value rejected", func(t *testing.T) {
		sale := newTestSale()
		err := sale.Resolve(DeliveryResolution{Status: DeliveryReturned, LossValue: dec("100.01")}, now)
		if !IsValidation(err) {
			t.Fatalf("Resolve = %v, want ValidationError", err)
		}
		if sale.Status != DeliveryPending || !sale.LossValue.IsZero() {
			t.Error("failed Resolve mutated the sale")
		}
	})

	t.Run("loss equal to sale value accepted", func(t *testing.T) {
		sale := newTestSale()
		if err := sale.Resolve(DeliveryResolution{Status: DeliveryReturned, LossValue: dec("100")}, now); err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
	})

	t.Run("negative loss rejected", func(t *testing.T) {
		sale := newTestSale()
		err := sale.Resolve(DeliveryResolution{Status: DeliveryReturned, LossValue: dec("-1")}, now)
		if !IsValidation(err) {
			t.Fatalf("Resolve = %v, want ValidationError", err)
		}
	})

	t.Run("pending is not a resolution", func(t *testing.T) {
		sale := newTestSale()
		err := sale.Resolve(DeliveryResolution{Status: DeliveryPending}, now)
		if !IsValidation(err) {
			t.Fatalf("Resolve = %v, want ValidationError", err)
		}
	})

	t.Run("delivery date before sale date rejected", func(t *testing.T) {
		sale := newTestSale()
		early := NewDate(2024, time.May, 1)
		err := sale.Resolve(DeliveryResolution{Status: DeliveryDelivered, DeliveryDate: &early}, now)
		if !IsValidation(err) {
			t.Fatalf("Resolve = %v, want ValidationError", err)
		}
	})

	t.Run("re-resolution overwrites prior outcome", func(t *testing.T) {
		sale := newTestSale()
		if err := sale.Resolve(DeliveryResolution{Status: DeliveryReturned, LossValue: dec("20")}, now); err != nil {
			t.Fatalf("first Resolve returned error: %v", err)
		}
		if err := sale.Resolve(DeliveryResolution{Status: DeliveryDelivered}, now); err != nil {
			t.Fatalf("second Resolve returned error: %v", err)
		}
		if sale.Status != DeliveryDelivered {
			t.Errorf("Status = %s, want delivered", sale.Status)
		}
		if !sale.LossValue.IsZero() {
			t.Errorf("LossValue = %s after correction, want 0", sale.LossValue)
		}
	})
}

func TestParseDeliveryStatus(t *testing.T) {
	if got, ok := ParseDeliveryStatus("Delivered"); !ok || got != DeliveryDelivered {
		t.Errorf("ParseDeliveryStatus(Delivered) = %s, %v", got, ok)
	}
	if got, ok := ParseDeliveryStatus("returned"); !ok || got != DeliveryReturned {
		t.Errorf("ParseDeliveryStatus(returned) = %s, %v", got, ok)
	}
	if _, ok := ParseDeliveryStatus("pending"); ok {
		t.Error("ParseDeliveryStatus accepted pending as a resolution")
	}
}
