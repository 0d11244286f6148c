package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/aisle/internal/logger"
)

// MemoryTarget selects the in-memory backend in Open.
const MemoryTarget = ":memory:"

// Backend names, as reported by Backend.
const (
	BackendMemory   = "memory"
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Backend reports which kind of store Open picks for target. It never
// returns the target itself, so the result is safe to log.
func Backend(target string) string {
	target = strings.TrimSpace(target)
	switch {
	case target == MemoryTarget:
		return BackendMemory
	case IsPostgresTarget(target):
		return BackendPostgres
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

type openOptions struct {
	allowCredentials bool
}

type OpenOption func(*openOptions)

// AllowEmbeddedCredentials accepts Postgres connection strings carrying a
// password. Used for values read from the OS keyring or the environment.
func AllowEmbeddedCredentials() OpenOption {
	return func(o *openOptions) { o.allowCredentials = true }
}

// Open picks a backend for target without touching it; call Init or Load next.
//
//	postgres://…, postgresql://…, key=value DSN -> PostgresStore
//	:memory:                                      -> MemoryStore
//	*.json                                        -> JSONStore
//	anything else                                 -> SQLiteStore
func Open(target string, opts ...OpenOption) (Provider, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return nil, errors.New("no store configured")
	}
	switch Backend(target) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendPostgres:
		if ok, err := ValidateConnString(target); !ok {
			if !o.allowCredentials || !errors.Is(err, ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return NewPostgresStore(target), nil
	case BackendJSON:
		return NewJSONStore(target), nil
	default:
		return NewSQLiteStore(target), nil
	}
}

// Copy writes every key of src into dst and returns how many keys were copied.
// Keys present only in dst are left alone.
func Copy(ctx context.Context, dst, src Provider) (int, error) {
	keys, err := src.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}

	copied := 0
	for _, key := range keys {
		value, err := src.Get(ctx, key)
		if errors.Is(err, ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return copied, err
		}
		if err := dst.Set(ctx, key, value); err != nil {
			return copied, err
		}
		copied++
	}
	logger.Debug("copied store", "from", src.GetConfigPath(), "to", dst.GetConfigPath(), "keys", copied)
	return copied, nil
}
