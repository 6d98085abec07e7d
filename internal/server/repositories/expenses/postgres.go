package expenses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

const expenseColumns = `id, user_id, title, amount, category, occurred_at, note, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	e := &models.Expense{}
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Note, &e.CreatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	query :=
		`INSERT INTO expenses (user_id, title, amount, category, occurred_at, note)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		e.UserID, e.Title, e.Amount, e.Category, e.Date, e.Note).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	query :=
		`SELECT ` + expenseColumns + ` FROM expenses
		 WHERE user_id = $1
		 ORDER BY occurred_at DESC, created_at ASC, id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// nullable turns an absent patch field into SQL NULL so COALESCE keeps the
// stored value.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func (r *PostgresRepository) UpdateOwned(ctx context.Context, id, userID string, patch models.ExpensePatch) (*models.Expense, error) {
	query :=
		`UPDATE expenses SET
		   title       = COALESCE($3, title),
		   amount      = COALESCE($4, amount),
		   category    = COALESCE($5, category),
		   occurred_at = COALESCE($6, occurred_at),
		   note        = COALESCE($7, note)
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + expenseColumns

	row := r.db.QueryRowContext(ctx, query, id, userID,
		nullable(patch.Title), nullable(patch.Amount), nullable(patch.Category), nullable(patch.Date), nullable(patch.Note))

	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	query :=
		`DELETE FROM expenses
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
