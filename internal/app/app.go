// Package app wires the application together: database, migrations,
// services, and the HTTP server, plus graceful shutdown on OS signals.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kaypiton/billing-backend/internal/config"
	"github.com/kaypiton/billing-backend/internal/logging"
	"github.com/kaypiton/billing-backend/internal/repositories/repomanager"
	"github.com/kaypiton/billing-backend/internal/services"
	"github.com/kaypiton/billing-backend/internal/transport/httpapi"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func New(cfg *config.Config) (*App, error) {
	level := slog.LevelInfo
	if cfg.Env == "local" {
		level = slog.LevelDebug
	}
	logger := logging.NewJSONLogger(level).With("env", cfg.Env)

	db, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	hasher := services.NewPasswordHasher()
	issuer := services.NewTokenIssuer(cfg.JWT)

	svcs := &httpapi.Services{
		Auth:      services.NewAuthService(db, rm, hasher, issuer),
		Issuer:    issuer,
		Customers: services.NewCustomerService(db, rm),
		Products:  services.NewProductService(db, rm),
		Billings:  services.NewBillingService(db, rm, http.DefaultClient, cfg.Billing.ImportURL),
		Roles:     services.NewRoleService(db, rm),
		Users:     services.NewUserService(db, rm, hasher),
	}
	router := httpapi.NewRouter(svcs, logger)
	server := httpapi.NewServer(cfg.HTTPServer, router)

	app := &App{config: cfg, logger: logger, db: db, server: server}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return app, nil
}

// Run serves HTTP until the context is canceled or SIGINT/SIGTERM arrives,
// then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "starting http server", "addr", a.config.HTTPServer.Address)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return a.db.Close()
}
