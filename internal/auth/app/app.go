package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/lumeva/authcore/internal/auth/http"
	"github.com/lumeva/authcore/internal/auth/service"
	"github.com/lumeva/authcore/internal/auth/store"
	"github.com/lumeva/authcore/internal/auth/store/drivers/sqlite"
	"github.com/lumeva/authcore/pkg/jwtx"
	"github.com/lumeva/authcore/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	accessSigner    *jwtx.Signer
	refreshSigner   *jwtx.Signer
	accessVerifier  *jwtx.Verifier
	refreshVerifier *jwtx.Verifier

	sessionService      *service.SessionService
	tokenService        *service.TokenService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authcore",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initTokenKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("authcore starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down authcore...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("authcore stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initTokenKeys builds the per-class signers and verifiers.
func (app *Application) initTokenKeys() error {
	var err error

	if app.accessSigner, err = jwtx.NewSigner([]byte(app.cfg.AccessSigningKey), app.cfg.AccessTTL, app.cfg.Issuer); err != nil {
		return fmt.Errorf("access signer: %w", err)
	}
	if app.refreshSigner, err = jwtx.NewSigner([]byte(app.cfg.RefreshSigningKey), app.cfg.RefreshTTL, app.cfg.Issuer); err != nil {
		return fmt.Errorf("refresh signer: %w", err)
	}
	if app.accessVerifier, err = jwtx.NewVerifier([]byte(app.cfg.AccessSigningKey), app.cfg.Issuer); err != nil {
		return fmt.Errorf("access verifier: %w", err)
	}
	if app.refreshVerifier, err = jwtx.NewVerifier([]byte(app.cfg.RefreshSigningKey), app.cfg.Issuer); err != nil {
		return fmt.Errorf("refresh verifier: %w", err)
	}

	return nil
}

// initServices initializes the business logic services.
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:         app.db,
		AccessSigner:  app.accessSigner,
		RefreshSigner: app.refreshSigner,
	}

	app.tokenService = &service.TokenService{
		Store:           app.db,
		AccessSigner:    app.accessSigner,
		RefreshVerifier: app.refreshVerifier,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP builds the router and HTTP server.
func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(app.accessVerifier, BuildVersion, app.db, app.logger)
	app.router.SessionService = app.sessionService
	app.router.TokenService = app.tokenService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
