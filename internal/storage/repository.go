// Package storage persists application state in SQLite. Each kind of
// state lives in a named slot holding a JSON document that is written
// and read wholesale, mirroring the single-user nature of the app.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// Slot keys. The value column always holds JSON.
const (
	slotTransactions = "transactions"
	slotBudget       = "budget"
	slotTheme        = "theme"
	slotSyncConfig   = "sync-config"
)

// DefaultBudget applies until the user sets one.
const DefaultBudget = 1000

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveTransactions replaces the persisted transaction list.
func (r *SQLiteRepository) SaveTransactions(ctx context.Context, list []core.Transaction) error {
	if list == nil {
		list = []core.Transaction{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	return r.putSlot(ctx, slotTransactions, string(data))
}

// LoadTransactions returns the persisted list. A missing or unreadable
// slot yields an empty list so a corrupted row never blocks startup.
func (r *SQLiteRepository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	raw, err := r.getSlot(ctx, slotTransactions)
	if errors.Is(err, sql.ErrNoRows) {
		return []core.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	var list []core.Transaction
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		slog.Warn("Discarding unreadable transactions slot", "error", err)
		return []core.Transaction{}, nil
	}
	if list == nil {
		list = []core.Transaction{}
	}
	return list, nil
}

func (r *SQLiteRepository) SaveBudget(ctx context.Context, budget float64) error {
	return r.putSlot(ctx, slotBudget, strconv.FormatFloat(budget, 'f', -1, 64))
}

// LoadBudget returns the stored monthly budget, or DefaultBudget when
// none has been set yet.
func (r *SQLiteRepository) LoadBudget(ctx context.Context) (float64, error) {
	raw, err := r.getSlot(ctx, slotBudget)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultBudget, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load budget: %w", err)
	}

	budget, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("Discarding unreadable budget slot", "error", err)
		return DefaultBudget, nil
	}
	return budget, nil
}

func (r *SQLiteRepository) SaveTheme(ctx context.Context, theme core.Theme) error {
	return r.putSlot(ctx, slotTheme, string(theme))
}

func (r *SQLiteRepository) LoadTheme(ctx context.Context) (core.Theme, error) {
	raw, err := r.getSlot(ctx, slotTheme)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}

	theme, err := core.ParseTheme(raw)
	if err != nil {
		slog.Warn("Discarding unreadable theme slot", "value", raw)
		return core.ThemeLight, nil
	}
	return theme, nil
}

func (r *SQLiteRepository) SaveSyncConfig(ctx context.Context, cfg core.SyncConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal sync config: %w", err)
	}
	return r.putSlot(ctx, slotSyncConfig, string(data))
}

// LoadSyncConfig returns the stored sync credentials. A missing slot
// yields the zero config, meaning sync is disconnected.
func (r *SQLiteRepository) LoadSyncConfig(ctx context.Context) (core.SyncConfig, error) {
	raw, err := r.getSlot(ctx, slotSyncConfig)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SyncConfig{}, nil
	}
	if err != nil {
		return core.SyncConfig{}, fmt.Errorf("load sync config: %w", err)
	}

	var cfg core.SyncConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		slog.Warn("Discarding unreadable sync config slot", "error", err)
		return core.SyncConfig{}, nil
	}
	return cfg, nil
}

// ClearSyncConfig removes the stored credentials on disconnect.
func (r *SQLiteRepository) ClearSyncConfig(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, slotSyncConfig)
	if err != nil {
		return fmt.Errorf("clear sync config: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) putSlot(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("put slot %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) getSlot(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}
