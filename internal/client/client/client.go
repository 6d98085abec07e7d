package client

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
)

// Client is the expense API surface used by the CLI.
type Client interface {
	SetToken(token string)
	Token() string
	Register(ctx context.Context, name, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Check(ctx context.Context) (string, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id string, in models.ExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	Export(ctx context.Context) (*models.Export, error)
}
