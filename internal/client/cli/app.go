package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/dmitrijs2005/expensetracker/internal/client/config"
	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/client/services"
)

type App struct {
	config         *config.Config
	db             *sql.DB
	authService    services.AuthService
	expenseService services.ExpenseService
	user           *models.User
	exportDir      string
	reader         *bufio.Reader
	out            io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := client.InitDatabase(ctx, c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db)
	es := services.NewExpenseService(apiClient, as)

	return &App{
		config:         c,
		db:             db,
		authService:    as,
		expenseService: es,
		exportDir:      filepath.Join(filepath.Dir(c.SessionFile), "exports"),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return "(" + a.user.Email + ") "
}

// report prints err in user-facing form. A rejected token also logs the
// user out locally.
func (a *App) report(err error) {
	var apiErr *client.APIError

	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.user = nil
		fmt.Fprintln(a.out, "Session expired, please log in again.")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later.")
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, apiErr.Message)
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *App) resume(ctx context.Context) {
	u, err := a.authService.Resume(ctx)
	switch {
	case err == nil && u != nil:
		a.user = u
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Saved session has expired, please log in.")
	case err != nil:
		a.report(err)
	}
}

// Run blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	fmt.Fprintln(a.out, "Welcome to the expense tracker CLI (type 'help' for commands)")
	a.resume(ctx)

	runREPL(ctx, a, a.status, a.reader)
}
