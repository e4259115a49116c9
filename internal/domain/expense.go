package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an advertising spend attributed to the inclusive interval
// [StartDate, EndDate]. Immutable after creation.
type Expense struct {
	ID        string          `json:"id" db:"id"`
	Concept   string          `json:"concept" db:"concept"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	StartDate Date            `json:"start_date" db:"start_date"`
	EndDate   Date            `json:"end_date" db:"end_date"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Validate checks the creation-time constraints of an expense.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Concept) == "" {
		return NewValidation("concept is required")
	}
	if e.Amount.IsNegative() {
		return NewValidation("amount must not be negative")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return NewValidation("start and end dates are required")
	}
	if e.EndDate.Time.Before(e.StartDate.Time) {
		return NewValidation("end date %s is before start date %s", e.EndDate, e.StartDate)
	}
	return nil
}

// Overlaps reports whether the expense interval intersects the query
// window. A nil bound is unbounded on that side.
func (e *Expense) Overlaps(from, to *Date) bool {
	if to != nil && e.StartDate.Time.After(to.Time) {
		return false
	}
	if from != nil && e.EndDate.Time.Before(from.Time) {
		return false
	}
	return true
}
