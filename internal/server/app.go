// Package server wires configuration, storage, services and the HTTP and
// gRPC listeners into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/config"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/memory"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"

	gs "github.com/dmitrijs2005/expensetracker/internal/server/grpc"
	hs "github.com/dmitrijs2005/expensetracker/internal/server/http"
)

// openPostgres is a seam for tests.
var openPostgres = repomanager.OpenPostgres

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	repos      repomanager.RepositoryManager
	httpServer *hs.Server
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(os.Stdout, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}

	if err := app.initStorage(ctx); err != nil {
		return nil, err
	}

	tokens := auth.NewTokenService(c.SecretKey)

	deps := hs.Deps{
		Users:    services.NewUserService(app.db, app.repos, tokens),
		Expenses: services.NewExpenseService(app.db, app.repos),
		Tokens:   tokens,
		Ready:    app.ready,
	}
	if c.ExportEnabled() {
		deps.Exports = services.NewExportService(app.db, app.repos, c)
	}

	app.httpServer = hs.NewServer(c, logger, deps)
	if c.EndpointAddrGRPC != "" {
		app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger)
	}

	return app, nil
}

func (app *App) initStorage(ctx context.Context) error {
	switch app.config.DataBackend {
	case config.BackendMemory:
		app.logger.Warn(ctx, "using in-memory storage, data is lost on exit")
		app.repos = memory.NewStore()
		return nil
	default:
		db, err := openPostgres(ctx, app.config.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("db init error: %w", err)
		}

		m := repomanager.NewPostgresRepositoryManager()
		if err := m.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("db migration error: %w", err)
		}

		app.db = db
		app.repos = m
		return nil
	}
}

func (app *App) ready(ctx context.Context) error {
	if app.db == nil {
		return nil
	}
	return app.db.PingContext(ctx)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives or either listener fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.DataBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
		app.grpcServer.SetServing(true)
	}

	wg.Wait()

	app.close(ctx)
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
