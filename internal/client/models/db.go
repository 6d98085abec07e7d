// Package models defines the client-side view of the expense API payloads.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User holds the public account fields returned by register and login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the token plus the account it was issued for.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Expense mirrors the server representation. Amount stays exact so totals
// do not drift.
type Expense struct {
	ID        string          `json:"_id"`
	UserID    string          `json:"user"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExpenseInput carries the writable fields. Nil fields are omitted from the
// request, which leaves them unchanged on update.
type ExpenseInput struct {
	Title    *string `json:"title,omitempty"`
	Amount   *string `json:"amount,omitempty"`
	Category *string `json:"category,omitempty"`
	Date     *string `json:"date,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// Export describes an uploaded CSV export.
type Export struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// Total sums the amounts of list.
func Total(list []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range list {
		total = total.Add(e.Amount)
	}
	return total
}
