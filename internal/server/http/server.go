// Package http serves the JSON API: authentication, owner-scoped expense
// CRUD, CSV export and health checks.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/config"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
)

// UserService is the subset of services.UserService used by the handlers.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
}

// ExpenseService is the subset of services.ExpenseService used by the handlers.
type ExpenseService interface {
	Create(ctx context.Context, userID string, in services.ExpenseInput) (*models.Expense, error)
	List(ctx context.Context, userID string) ([]*models.Expense, error)
	Update(ctx context.Context, userID, id string, in services.ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, userID, id string) error
}

// ExportService produces CSV exports.
type ExportService interface {
	Export(ctx context.Context, userID string) (*services.ExportResult, error)
}

// Deps groups what the server needs. Exports and Ready may be nil.
type Deps struct {
	Users    UserService
	Expenses ExpenseService
	Exports  ExportService
	Tokens   *auth.TokenService
	Ready    func(context.Context) error
}

type Server struct {
	address         string
	logger          logging.Logger
	users           UserService
	expenses        ExpenseService
	exports         ExportService
	tokens          *auth.TokenService
	ready           func(context.Context) error
	allowedOrigins  []string
	maxBodyBytes    int64
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	now             func() time.Time
}

func NewServer(cfg *config.Config, l logging.Logger, d Deps) *Server {
	return &Server{
		address:         cfg.EndpointAddrHTTP,
		logger:          l.With("module", "http_server"),
		users:           d.Users,
		expenses:        d.Expenses,
		exports:         d.Exports,
		tokens:          d.Tokens,
		ready:           d.Ready,
		allowedOrigins:  cfg.CORSAllowedOrigins,
		maxBodyBytes:    cfg.MaxBodyBytes,
		readTimeout:     cfg.ReadTimeout,
		writeTimeout:    cfg.WriteTimeout,
		idleTimeout:     cfg.IdleTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
		now:             time.Now,
	}
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	protected := func(h http.HandlerFunc) http.Handler { return s.requireAuth(h) }

	mux.Handle("GET /api/expenses", protected(s.handleListExpenses))
	mux.Handle("POST /api/expenses", protected(s.handleCreateExpense))
	mux.Handle("GET /api/expenses/test", protected(s.handleSessionCheck))
	mux.Handle("PUT /api/expenses/{id}", protected(s.handleUpdateExpense))
	mux.Handle("DELETE /api/expenses/{id}", protected(s.handleDeleteExpense))
	if s.exports != nil {
		mux.Handle("POST /api/expenses/export", protected(s.handleExport))
	}

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("/", s.handleNotFound)

	return chain(mux,
		s.recoverPanic,
		s.requestID,
		s.accessLog,
		securityHeaders,
		s.cors,
		s.jsonBody,
	)
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
