package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_ReturnsTotal(t *testing.T) {
	fc := &fakeClient{list: []models.Expense{
		{Amount: decimal.RequireFromString("10.25")},
		{Amount: decimal.RequireFromString("4.75")},
	}}
	s := NewExpenseService(fc, NewAuthService(fc, setupDB(t)))

	list, total, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "15", total.String())
}

func TestUnauthorized_WipesSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{session: testSession()}
	auth := NewAuthService(fc, db)
	_, err := auth.Login(context.Background(), "ann@example.com", "pw")
	require.NoError(t, err)

	fc.err = client.ErrUnauthorized
	s := NewExpenseService(fc, auth)

	_, _, err = s.List(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, fc.token)
	assert.Nil(t, getMeta(t, db, keyToken))
}

func TestEditAndDelete_PassThrough(t *testing.T) {
	fc := &fakeClient{expense: &models.Expense{ID: "e1"}}
	s := NewExpenseService(fc, NewAuthService(fc, setupDB(t)))
	amount := "3"

	e, err := s.Edit(context.Background(), "e1", models.ExpenseInput{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, "e1", fc.lastID)
	assert.Equal(t, &amount, fc.lastInput.Amount)

	fc.err = &client.APIError{Status: 404, Message: "Expense Not Found OR Not Owned By You."}
	err = s.Delete(context.Background(), "e2")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "e2", fc.lastID)
}
