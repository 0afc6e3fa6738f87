package cache

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	// Register the pure-Go sqlite driver
	_ "modernc.org/sqlite"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteConfig holds the configuration for the SQLite cache
type SQLiteConfig struct {
	// Path is the database file; its directory is created when missing
	Path  string
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", c.Path, vb)
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

// SQLiteRepository is a single-file cache for the command line tools
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLite opens (creating if needed) the cache database
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, errors.Wrapf(err, "failed to create cache directory for %s", cfg.Path)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite cache at %s", cfg.Path)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create cache schema")
	}

	slog.DebugContext(ctx, "sqlite cache opened", "path", cfg.Path)
	return &SQLiteRepository{db: db, clock: cfg.Clock}, nil
}

var _ Repository = (*SQLiteRepository)(nil)

// Close releases the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get returns the value for a key
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, input.Key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("cache key %s not found", input.Key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s from sqlite", input.Key)
	}

	return &GetOutput{Value: value}, nil
}

// Set stores a value
func (r *SQLiteRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		input.Key, input.Value, r.clock.Now().UnixMilli())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to write %s to sqlite", input.Key)
	}

	return &SetOutput{}, nil
}

// Remove deletes a key
func (r *SQLiteRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, input.Key); err != nil {
		return nil, errors.Wrapf(err, "failed to remove %s from sqlite", input.Key)
	}

	return &RemoveOutput{}, nil
}
