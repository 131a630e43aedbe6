// Package storage persists Duit's string-keyed state.
//
// A Store is the raw key-value backend (SQLite, Redis or memory). The Adapter
// wraps a Store with JSON encoding and converts every backend failure into a
// Result so that callers in the UI never see a raw error.
package storage

import (
	"context"
	"errors"
	"fmt"

	"duit/internal/config"
	"duit/internal/logging"
)

// ErrNotFound is returned by Store.Get when the key has never been set.
var ErrNotFound = errors.New("storage: key not found")

// Persisted keys.
const (
	KeyProfile      = "userSettings"
	KeyBlockedCount = "@duit_blocked_count"
	KeySettings     = "@duit_settings"
	KeyHistory      = "@duit_history"
	KeyStreaks      = "@duit_streaks"
)

// AllKeys lists every key Duit writes, in backup order.
var AllKeys = []string{KeyProfile, KeyBlockedCount, KeySettings, KeyHistory, KeyStreaks}

// Store is an asynchronous string-keyed store. Writes are atomic per key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Open builds the Store selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	logging.Store("Opening %s store", cfg.Storage.Backend)

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendSQLite, "":
		return NewSQLiteStore(ctx, cfg.Storage.SQLite.Driver, cfg.SQLitePath())
	case config.BackendRedis:
		r := cfg.Storage.Redis
		return NewRedisStore(ctx, RedisOptions{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
			Timeout:  cfg.GetRedisTimeout(),
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
