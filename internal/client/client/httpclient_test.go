package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/config"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/memory"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hs "github.com/dmitrijs2005/expensetracker/internal/server/http"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "secret"

	store := memory.NewStore()
	tokens := auth.NewTokenService(cfg.SecretKey)
	srv := hs.NewServer(cfg, logging.Nop{}, hs.Deps{
		Users:    services.NewUserService(nil, store, tokens),
		Expenses: services.NewExpenseService(nil, store),
		Tokens:   tokens,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T, url string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(url, 2*time.Second)
	require.NoError(t, err)
	return c
}

func str(s string) *string { return &s }

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com", time.Second)
	assert.Error(t, err)
	_, err = NewHTTPClient("://", time.Second)
	assert.Error(t, err)
}

func TestHTTPClient_EndToEnd(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newAPI(t).URL)

	s, err := c.Register(ctx, "Ann", "ann@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, s.Token, c.Token())

	id, err := c.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, id)

	e, err := c.CreateExpense(ctx, models.ExpenseInput{Amount: str("9.99"), Category: str("Food"), Date: str("2024-03-01")})
	require.NoError(t, err)
	assert.Equal(t, "Food expense", e.Title)
	assert.Equal(t, "9.99", e.Amount.String())

	e, err = c.UpdateExpense(ctx, e.ID, models.ExpenseInput{Title: str("Dinner")})
	require.NoError(t, err)
	assert.Equal(t, "Dinner", e.Title)

	list, err := c.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dinner", list[0].Title)

	require.NoError(t, c.DeleteExpense(ctx, e.ID))

	err = c.DeleteExpense(ctx, e.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Expense Not Found OR Not Owned By You.", apiErr.Message)

	_, err = c.Login(ctx, "ann@example.com", "wrong")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid email or password.", apiErr.Message)
}

func TestHTTPClient_UnauthorizedDropsToken(t *testing.T) {
	c := newClient(t, newAPI(t).URL)
	c.SetToken("stale")

	_, err := c.ListExpenses(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())
}

func TestHTTPClient_NonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).ListExpenses(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestHTTPClient_ResponseTooLarge(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[` + strings.Repeat(" ", 64) + `]`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)
	c.maxBody = 32

	_, err := c.ListExpenses(context.Background())
	assert.ErrorIs(t, err, ErrTooLarge)

	c.maxBody = MaxResponseBytes
	list, err := c.ListExpenses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := newClient(t, url).ListExpenses(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable), err)
}

func TestHTTPClient_SendsBearer(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"key":"k","url":"u","count":3}`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL+"/")
	c.SetToken("abc")

	e, err := c.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got)
	assert.Equal(t, 3, e.Count)
}
