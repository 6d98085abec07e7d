package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/shopspring/decimal"
)

// ExpenseService wraps the expense endpoints. A rejected token also wipes the
// saved session so the next start asks for credentials again.
type ExpenseService interface {
	List(ctx context.Context) ([]models.Expense, decimal.Decimal, error)
	Add(ctx context.Context, in models.ExpenseInput) (*models.Expense, error)
	Edit(ctx context.Context, id string, in models.ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) (*models.Export, error)
}

type expenseService struct {
	client client.Client
	auth   AuthService
}

func NewExpenseService(c client.Client, auth AuthService) ExpenseService {
	return &expenseService{client: c, auth: auth}
}

func (s *expenseService) check(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		_ = s.auth.Logout(ctx)
	}
	return err
}

func (s *expenseService) List(ctx context.Context) ([]models.Expense, decimal.Decimal, error) {
	list, err := s.client.ListExpenses(ctx)
	if err != nil {
		return nil, decimal.Zero, s.check(ctx, err)
	}
	return list, models.Total(list), nil
}

func (s *expenseService) Add(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	e, err := s.client.CreateExpense(ctx, in)
	return e, s.check(ctx, err)
}

func (s *expenseService) Edit(ctx context.Context, id string, in models.ExpenseInput) (*models.Expense, error) {
	e, err := s.client.UpdateExpense(ctx, id, in)
	return e, s.check(ctx, err)
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	return s.check(ctx, s.client.DeleteExpense(ctx, id))
}

func (s *expenseService) Export(ctx context.Context) (*models.Export, error) {
	e, err := s.client.Export(ctx)
	return e, s.check(ctx, err)
}
