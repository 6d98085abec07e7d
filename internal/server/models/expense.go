// Package models holds the domain records shared by the repositories, the
// services and the transport layers.
package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record owned by one user.
type Expense struct {
	ID        string
	UserID    string
	Title     string
	Amount    decimal.Decimal
	Category  string
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

// ExpensePatch lists the fields an owner may change. A nil field is left as is.
type ExpensePatch struct {
	Title    *string
	Amount   *decimal.Decimal
	Category *string
	Date     *time.Time
	Note     *string
}

// Apply writes the non-nil fields of p onto e.
func (p ExpensePatch) Apply(e *Expense) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
}

// Empty reports whether p changes nothing.
func (p ExpensePatch) Empty() bool {
	return p.Title == nil && p.Amount == nil && p.Category == nil && p.Date == nil && p.Note == nil
}

const maxDerivedTitle = 60

// DefaultTitle picks the stored title: the trimmed title, else the trimmed
// note cut to 60 characters, else "<category> expense".
func DefaultTitle(title, note, category string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	if n := strings.TrimSpace(note); n != "" {
		if utf8.RuneCountInString(n) > maxDerivedTitle {
			n = string([]rune(n)[:maxDerivedTitle])
		}
		return n
	}
	return category + " expense"
}

var (
	ErrAmountNotNumber = errors.New("amount is not a number")
	ErrDateInvalid     = errors.New("date is invalid")
)

// Amounts must fit a float64; anything smaller than 10^-minAmountExp is zero.
const (
	maxAmountExp = 309
	minAmountExp = 20
)

// ParseAmount parses a finite signed decimal such as "12.50" or "-3".
// Values beyond the float64 range are rejected before they get expanded.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrAmountNotNumber
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrAmountNotNumber
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}

	// magnitude is the position of the leading digit: d < 10^magnitude.
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	if magnitude < -minAmountExp {
		return decimal.Zero, nil
	}
	if magnitude > maxAmountExp || math.IsInf(d.InexactFloat64(), 0) {
		return decimal.Zero, ErrAmountNotNumber
	}
	if d.Exponent() < -(minAmountExp + maxAmountExp) {
		d = d.Truncate(minAmountExp + maxAmountExp)
	}
	return d, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Dates must render as four-digit years in RFC 3339.
const (
	minDateYear = 0
	maxDateYear = 9999
)

func inRange(t time.Time) (time.Time, error) {
	t = t.UTC()
	if y := t.Year(); y < minDateYear || y > maxDateYear {
		return time.Time{}, ErrDateInvalid
	}
	return t, nil
}

// ParseDate accepts an RFC 3339 timestamp, a calendar date (or just its
// year and month) or a local date-time without zone, read as UTC. Results
// are normalized to UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrDateInvalid
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return inRange(t)
		}
	}
	return time.Time{}, ErrDateInvalid
}

// ParseDateMillis reads a JSON number of Unix milliseconds.
func ParseDateMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}
	// 100,000,000 days either side of the epoch
	const limit = 8_640_000_000_000_000
	if ms > limit || ms < -limit {
		return time.Time{}, ErrDateInvalid
	}
	return inRange(time.UnixMilli(ms))
}
