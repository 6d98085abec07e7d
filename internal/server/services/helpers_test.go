package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/memory"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func strPtr(s string) *string { return &s }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeExpensesRepo struct {
	err error
}

func (f *fakeExpensesRepo) Create(context.Context, *models.Expense) (*models.Expense, error) {
	return nil, f.err
}
func (f *fakeExpensesRepo) ListByUser(context.Context, string) ([]*models.Expense, error) {
	return nil, f.err
}
func (f *fakeExpensesRepo) UpdateOwned(context.Context, string, string, models.ExpensePatch) (*models.Expense, error) {
	return nil, f.err
}
func (f *fakeExpensesRepo) DeleteOwned(context.Context, string, string) error { return f.err }

type fakeRepoManager struct {
	u users.Repository
	e expenses.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) Expenses(dbx.DBTX) expenses.Repository       { return m.e }

// newMemoryServices wires the services over a fresh in-memory store.
func newMemoryServices(t *testing.T) (*UserService, *ExpenseService, *auth.TokenService) {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokenService("test-secret")
	return NewUserService(nil, store, tokens), NewExpenseService(nil, store), tokens
}

func mustRegister(t *testing.T, us *UserService, email string) *Session {
	t.Helper()
	s, err := us.Register(context.Background(), "Name", email, "password1")
	require.NoError(t, err)
	return s
}
