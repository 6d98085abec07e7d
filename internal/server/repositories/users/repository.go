// Package users stores registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills ID and CreatedAt. A taken email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail matches the email exactly; absence is common.ErrorNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
