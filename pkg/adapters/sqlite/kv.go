// Package sqlite stores the key-value medium in a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/aretw0/memo/pkg/core"
)

// DefaultFilename is the database file created inside the data directory.
const DefaultFilename = "memo.db"

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Config holds the configuration for the SQLite medium.
type Config struct {
	Path     string // Directory holding the database file
	Filename string
	ReadOnly bool
	Logger   *slog.Logger
}

// KV implements core.KV on an SQLite database.
type KV struct {
	config Config
	mu     sync.Mutex
	db     *sql.DB
}

// NewKV creates an SQLite medium. The database is opened by Initialize.
func NewKV(config Config) *KV {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &KV{config: config}
}

// DSN returns the database file path.
func (k *KV) DSN() string {
	return filepath.Join(k.config.Path, k.config.Filename)
}

// Initialize opens the database and creates the schema.
func (k *KV) Initialize(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.db != nil {
		return nil
	}

	if !k.config.ReadOnly {
		if err := os.MkdirAll(k.config.Path, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	dsn := k.DSN()
	if k.config.ReadOnly {
		dsn = "file:" + dsn + "?mode=ro"
	}

	db, err := openDB("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serializes writers anyway; a single connection keeps it simple.
	db.SetMaxOpenConns(1)

	if !k.config.ReadOnly {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	k.db = db
	k.config.Logger.Debug("sqlite medium opened", "path", k.DSN())
	return nil
}

// Get reads the value stored under key.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := k.handle()
	if err != nil {
		return "", false, err
	}

	var value string
	err = db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the value stored under key.
func (k *KV) Set(ctx context.Context, key, value string) error {
	if k.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := k.handle()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (k *KV) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.db == nil {
		return nil
	}
	err := k.db.Close()
	k.db = nil
	return err
}

// ComponentType implements introspection.Component.
func (k *KV) ComponentType() string {
	return "sqlite"
}

func (k *KV) handle() (*sql.DB, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.db == nil {
		return nil, errors.New("sqlite medium is not initialized")
	}
	return k.db, nil
}

var _ core.KV = (*KV)(nil)
var _ core.Closer = (*KV)(nil)
