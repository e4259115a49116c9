package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus tracks a sale's disposition. A sale starts pending and is
// later resolved as delivered or returned; re-resolution overwrites the
// prior outcome.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryReturned  DeliveryStatus = "returned"
)

// ParseDeliveryStatus maps a wire string onto a resolved status. Only the
// two terminal states are accepted; a sale cannot be resolved back to
// pending.
func ParseDeliveryStatus(s string) (DeliveryStatus, bool) {
	switch DeliveryStatus(strings.ToLower(s)) {
	case DeliveryDelivered:
		return DeliveryDelivered, true
	case DeliveryReturned:
		return DeliveryReturned, true
	}
	return "", false
}

// Sale is a single transaction with a client for a product. Identity,
// client, product, sale value, and profit are immutable after creation;
// only the delivery-resolution fields (Status, DeliveryDate, LossValue)
// change afterwards, and only through Resolve.
type Sale struct {
	ID           string          `json:"id" db:"id"`
	ClientID     string          `json:"client_id" db:"client_id"`
	Product      string          `json:"product" db:"product"`
	SaleDate     Date            `json:"sale_date" db:"sale_date"`
	DeliveryDate *Date           `json:"delivery_date,omitempty" db:"delivery_date"`
	SaleValue    decimal.Decimal `json:"sale_value" db:"sale_value"`
	Profit       decimal.Decimal `json:"profit" db:"profit"`
	Status       DeliveryStatus  `json:"status" db:"status"`
	LossValue    decimal.Decimal `json:"loss_value" db:"loss_value"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// DeliveryResolution is the outcome applied to a sale by resolveDelivery.
type DeliveryResolution struct {
	Status       DeliveryStatus
	DeliveryDate *Date
	LossValue    decimal.Decimal
}

// Validate checks the creation-time constraints of a sale.
func (s *Sale) Validate() error {
	if strings.TrimSpace(s.Product) == "" {
		return NewValidation("product is required")
	}
	if s.SaleDate.IsZero() {
		return NewValidation("sale date is required")
	}
	if s.SaleValue.IsNegative() {
		return NewValidation("sale value must not be negative")
	}
	if s.DeliveryDate != nil && s.DeliveryDate.Time.Before(s.SaleDate.Time) {
		return NewValidation("delivery date %s is before sale date %s", s.DeliveryDate, s.SaleDate)
	}
	return nil
}

// Resolve applies a delivery resolution, overwriting any prior outcome.
// A delivered sale always carries zero loss; a returned sale's loss must be
// non-negative and cannot exceed the sale value. The sale is left untouched
// on error.
func (s *Sale) Resolve(r DeliveryResolution, now time.Time) error {
	switch r.Status {
	case DeliveryDelivered:
		r.LossValue = decimal.Zero
	case DeliveryReturned:
		if r.LossValue.IsNegative() {
			return NewValidation("loss value must not be negative")
		}
		if r.LossValue.GreaterThan(s.SaleValue) {
			return NewValidation("loss value %s exceeds sale value %s", r.LossValue, s.SaleValue)
		}
	default:
		return NewValidation("invalid delivery status %q", r.Status)
	}

	if r.DeliveryDate != nil && r.DeliveryDate.Time.Before(s.SaleDate.Time) {
		return NewValidation("delivery date %s is before sale date %s", r.DeliveryDate, s.SaleDate)
	}

	s.Status = r.Status
	s.LossValue = r.LossValue
	if r.DeliveryDate != nil {
		s.DeliveryDate = r.DeliveryDate
	}
	s.UpdatedAt = now
	return nil
}

// PendingSale is a pending sale enriched with the client's display name for
// the follow-up list.
type PendingSale struct {
	Sale
	ClientName string `json:"client_name"`
}
