package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpense_DecodesNumericAmount(t *testing.T) {
	var e Expense
	err := json.Unmarshal([]byte(`{"_id":"1","amount":12.5,"date":"2024-03-01T00:00:00Z"}`), &e)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(e.Amount))
	assert.Equal(t, 2024, e.Date.Year())
}

func TestTotal(t *testing.T) {
	list := []Expense{
		{Amount: decimal.RequireFromString("0.1")},
		{Amount: decimal.RequireFromString("0.2")},
		{Amount: decimal.RequireFromString("-1")},
	}
	assert.Equal(t, "-0.7", Total(list).String())
	assert.True(t, Total(nil).IsZero())
}

func TestExpenseInput_OmitsNil(t *testing.T) {
	amount := "5"
	b, err := json.Marshal(ExpenseInput{Amount: &amount})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"5"}`, string(b))
}
