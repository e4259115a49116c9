package domain

import (
	"strings"
	"time"
)

// Client is a customer referenced by sales. Sales hold the client id only,
// never an embedded client, so the ledgers stay independently testable.
type Client struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FullName returns the display name used when listing pending sales.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks the required registration fields.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return NewValidation("first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return NewValidation("last name is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return NewValidation("phone is required")
	}
	return nil
}
