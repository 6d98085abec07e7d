package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	MsgExpenseFieldsRequired = "Amount, category and date are required."
	MsgAmountNotNumber       = "Amount must be a number."
	MsgDateInvalid           = "Date is invalid."
	MsgCategoryRequired      = "Category is required."
)

// ExpenseInput carries the client-supplied fields in textual form. Nil means
// the field was absent (or JSON null).
type ExpenseInput struct {
	Title    *string
	Amount   *string
	Category *string
	Date     *string
	Note     *string

	// DateIsNumber marks Date as a JSON number of Unix milliseconds.
	DateIsNumber bool
}

func (in ExpenseInput) date() (time.Time, error) {
	if in.DateIsNumber {
		return models.ParseDateMillis(*in.Date)
	}
	return models.ParseDate(*in.Date)
}

// ExpenseService implements owner-scoped expense operations.
type ExpenseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewExpenseService(db *sql.DB, m repomanager.RepositoryManager) *ExpenseService {
	return &ExpenseService{db: db, repomanager: m}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Create validates in and stores a new expense owned by userID.
func (s *ExpenseService) Create(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error) {
	if in.Amount == nil || in.Category == nil || blank(*in.Category) || in.Date == nil || blank(*in.Date) {
		return nil, common.NewValidationError(MsgExpenseFieldsRequired)
	}

	amount, err := models.ParseAmount(*in.Amount)
	if err != nil {
		return nil, common.NewValidationError(MsgAmountNotNumber)
	}

	date, err := in.date()
	if err != nil {
		return nil, common.NewValidationError(MsgDateInvalid)
	}

	category := strings.TrimSpace(*in.Category)
	note := deref(in.Note)

	e := &models.Expense{
		UserID:   userID,
		Title:    models.DefaultTitle(deref(in.Title), note, category),
		Amount:   amount,
		Category: category,
		Date:     date,
		Note:     note,
	}

	created, err := s.repomanager.Expenses(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error creating expense: %w", err)
	}
	return created, nil
}

// List returns every expense of userID, newest date first.
func (s *ExpenseService) List(ctx context.Context, userID string) ([]*models.Expense, error) {
	list, err := s.repomanager.Expenses(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}
	return list, nil
}

// Update applies the supplied fields to an expense owned by userID.
// Unknown, foreign and malformed ids all yield common.ErrorNotFound.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, in ExpenseInput) (*models.Expense, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}

	e, err := s.repomanager.Expenses(s.db).UpdateOwned(ctx, id, userID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating expense: %w", err)
	}
	return e, nil
}

func buildPatch(in ExpenseInput) (models.ExpensePatch, error) {
	var p models.ExpensePatch

	p.Title = in.Title
	p.Note = in.Note

	if in.Amount != nil {
		amount, err := models.ParseAmount(*in.Amount)
		if err != nil {
			return p, common.NewValidationError(MsgAmountNotNumber)
		}
		p.Amount = &amount
	}

	if in.Category != nil {
		if blank(*in.Category) {
			return p, common.NewValidationError(MsgCategoryRequired)
		}
		category := strings.TrimSpace(*in.Category)
		p.Category = &category
	}

	if in.Date != nil {
		date, err := in.date()
		if err != nil {
			return p, common.NewValidationError(MsgDateInvalid)
		}
		p.Date = &date
	}

	return p, nil
}

// Delete removes an expense owned by userID.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	if err := s.repomanager.Expenses(s.db).DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting expense: %w", err)
	}
	return nil
}
