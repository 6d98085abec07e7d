// Package expenses stores expense records. Every read and write is scoped to
// the owning user inside the statement itself.
package expenses

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

type Repository interface {
	// Create inserts e and fills ID and CreatedAt.
	Create(ctx context.Context, e *models.Expense) (*models.Expense, error)
	// ListByUser returns the user's expenses, newest date first; equal dates
	// keep creation order.
	ListByUser(ctx context.Context, userID string) ([]*models.Expense, error)
	// UpdateOwned applies patch to the expense only if userID owns it.
	// Missing or foreign ids yield common.ErrorNotFound.
	UpdateOwned(ctx context.Context, id, userID string, patch models.ExpensePatch) (*models.Expense, error)
	// DeleteOwned removes the expense only if userID owns it.
	DeleteOwned(ctx context.Context, id, userID string) error
}
