package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(t, err)
	return v
}

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	token string

	session *models.Session
	authErr error

	checkID  string
	checkErr error

	list    []models.Expense
	expense *models.Expense
	export  *models.Export
	err     error

	lastInput models.ExpenseInput
	lastID    string
}

func (f *fakeClient) SetToken(token string) { f.token = token }
func (f *fakeClient) Token() string         { return f.token }

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.token = f.session.Token
	return f.session, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return f.Register(ctx, "", email, password)
}

func (f *fakeClient) Check(ctx context.Context) (string, error) {
	if f.checkErr != nil {
		if f.checkErr == client.ErrUnauthorized {
			f.token = ""
		}
		return "", f.checkErr
	}
	return f.checkID, nil
}

func (f *fakeClient) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return f.list, f.err
}

func (f *fakeClient) CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	f.lastInput = in
	return f.expense, f.err
}

func (f *fakeClient) UpdateExpense(ctx context.Context, id string, in models.ExpenseInput) (*models.Expense, error) {
	f.lastID, f.lastInput = id, in
	return f.expense, f.err
}

func (f *fakeClient) DeleteExpense(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeClient) Export(ctx context.Context) (*models.Export, error) {
	return f.export, f.err
}
