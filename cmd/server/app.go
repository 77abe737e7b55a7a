package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mindluster/kanban-api/internal/api"
	"github.com/mindluster/kanban-api/internal/config"
	"github.com/mindluster/kanban-api/internal/platform/postgres"
	"github.com/mindluster/kanban-api/internal/service"
	"github.com/mindluster/kanban-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	taskStore store.TaskStore

	taskService *service.TaskService
	taskHandler *api.TaskHandler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := postgres.RunMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, db, cfg.Query, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	// Migrations create the schema; Bootstrap keeps fresh databases working
	// when migrations are skipped, so it runs idempotently either way.
	if err := app.taskService.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("failed to bootstrap task schema: %w", err)
	}

	app.taskHandler = api.NewTaskHandler(app.taskService, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
