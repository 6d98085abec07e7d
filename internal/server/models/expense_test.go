package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTitle(t *testing.T) {
	long := strings.Repeat("é", 70)

	tests := []struct {
		name                  string
		title, note, category string
		want                  string
	}{
		{"trimmed title", "  Lunch ", "note", "Food", "Lunch"},
		{"note when title blank", "   ", " cab home ", "Travel", "cab home"},
		{"note truncated by runes", "", long, "Misc", strings.Repeat("é", 60)},
		{"category fallback", "", "", "Food", "Food expense"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultTitle(tt.title, tt.note, tt.category))
		})
	}
}

func TestParseAmount(t *testing.T) {
	for in, want := range map[string]string{
		"12.50":       "12.5",
		"-3":          "-3",
		" 7 ":         "7",
		"1e2":         "100",
		"1e308":       "1e308",
		"1e-400":      "0",
		"1e-50000000": "0",
	} {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), "%s -> %s", in, got)
	}

	for _, in := range []string{"", "abc", "NaN", "Infinity", "12,5", "1e309", "2e308", "-1e400", "1e50000000", "12e2147483647"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrAmountNotNumber, in)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T10:30", time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
		{"2024-03-05T10:30:15", time.Date(2024, 3, 5, 10, 30, 15, 0, time.UTC)},
		{"2024-03-05T10:30:15+02:00", time.Date(2024, 3, 5, 8, 30, 15, 0, time.UTC)},
		{"2024-03-05T10:30:15.250Z", time.Date(2024, 3, 5, 10, 30, 15, 250_000_000, time.UTC)},
		{"2024-03", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"9999-12-31T23:59:59Z", time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	for _, in := range []string{"", "yesterday", "2024-13-01", "05/03/2024", "1709634615000", "0000-01-01T00:30:00+01:00"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrDateInvalid, in)
	}
}

func TestParseDateMillis(t *testing.T) {
	got, err := ParseDateMillis("1709634615000")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 5, 10, 30, 15, 0, time.UTC).Equal(got), got)
	assert.Equal(t, time.UTC, got.Location())

	got, err = ParseDateMillis("2024")
	require.NoError(t, err)
	assert.True(t, time.UnixMilli(2024).Equal(got), got)

	for _, in := range []string{"", "1.5e3", "253402300800000", "-62167219200001", "9223372036854775807"} {
		_, err := ParseDateMillis(in)
		assert.ErrorIs(t, err, ErrDateInvalid, in)
	}
}

func TestExpensePatch_Apply(t *testing.T) {
	e := Expense{ID: "e1", UserID: "u1", Title: "Old", Amount: decimal.NewFromInt(5), Category: "Food", Note: "n"}

	title := "New"
	amount := decimal.RequireFromString("9.99")
	p := ExpensePatch{Title: &title, Amount: &amount}
	assert.False(t, p.Empty())

	p.Apply(&e)
	assert.Equal(t, "New", e.Title)
	assert.True(t, amount.Equal(e.Amount))
	assert.Equal(t, "Food", e.Category)
	assert.Equal(t, "n", e.Note)
	assert.Equal(t, "u1", e.UserID)

	assert.True(t, ExpensePatch{}.Empty())
}
