package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/config"
)

// App holds initialized infrastructure that is guaranteed to be ready.
// If you have an *App, you know the store is open and the schema exists.
//
// This is NOT a god object - it just holds the "dangerous" infrastructure
// that requires open/migrate logic. Application logic should NOT go here.
type App struct {
	Config *config.Config

	// Embedded store
	Store *sqlite.Store

	// Internal cleanup - call AddCleanup to register cleanup functions
	cleanupFuncs []func() error
}

// AppOptions configures which infrastructure to initialize.
type AppOptions struct {
	// NeedsStore indicates the SQLite store is required
	NeedsStore bool
}

// Initialize creates an App with ready infrastructure.
// Returns an error if any required initialization fails.
//
// Usage:
//
//	app, cleanup, err := lifecycle.Initialize(ctx, lifecycle.AppOptions{
//	    NeedsStore: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
func Initialize(ctx context.Context, opts AppOptions) (*App, func(), error) {
	app := &App{}

	// Load configuration first
	cfg, err := config.LoadWithFile()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Open the store if needed
	if opts.NeedsStore {
		if err := app.initStore(ctx); err != nil {
			app.Cleanup()
			return nil, nil, err
		}
	}

	cleanup := func() {
		app.Cleanup()
	}

	return app, cleanup, nil
}

// AddCleanup registers a cleanup function to be called on shutdown.
// Functions are called in reverse order of registration.
func (app *App) AddCleanup(fn func() error) {
	app.cleanupFuncs = append(app.cleanupFuncs, fn)
}

// initStore opens the SQLite store and ensures the schema exists.
func (app *App) initStore(ctx context.Context) error {
	cfg := app.Config

	store, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.CreateSchema(ctx); err != nil {
		store.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	app.Store = store

	app.AddCleanup(func() error {
		slog.Info("Closing SQLite store")
		return store.Close()
	})

	slog.Info("SQLite store ready", "path", store.Path())
	return nil
}

// Cleanup runs all cleanup functions in reverse order.
func (app *App) Cleanup() {
	for i := len(app.cleanupFuncs) - 1; i >= 0; i-- {
		if err := app.cleanupFuncs[i](); err != nil {
			slog.Error("Cleanup error", "error", err)
		}
	}
}
