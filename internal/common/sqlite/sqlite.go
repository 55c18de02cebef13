// Package sqlite manages the embedded SQLite store shared by the entity
// repositories. The driver is pure Go (modernc.org/sqlite), so the store
// needs no cgo and no external database process.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"go.ledgerline.dev/internal/common/repository"
	"go.ledgerline.dev/internal/config"
)

// Store wraps the SQLite database handle with helper methods
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the SQLite store, applying WAL journaling, a busy timeout,
// and foreign-key enforcement through connection pragmas.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("database path is required")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	busyTimeout := cfg.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)",
		cfg.Path, busyTimeout.Milliseconds(),
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 4
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("Connected to SQLite store", "path", cfg.Path)

	return &Store{db: db, path: cfg.Path}, nil
}

// DB returns the underlying database handle
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Ping checks if the store is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx executes a function within a transaction, rolling back when the
// function returns an error.
func (s *Store) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MapError(err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return MapError(err)
	}
	return nil
}

// MapError translates driver-level failures into the repository fault
// taxonomy. Constraint violations of any kind (unique, primary key,
// foreign key, check) surface as ErrDuplicateKey, the store's
// data-integrity fault; busy and locked conditions surface as
// ErrUnavailable so callers treat them as transient. Everything else
// passes through untouched.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		// Mask extended result codes down to the primary code
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
		}
	}

	return err
}
