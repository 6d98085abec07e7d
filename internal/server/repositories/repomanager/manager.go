package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and prepares the
// backing schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Expenses(db dbx.DBTX) expenses.Repository
}
