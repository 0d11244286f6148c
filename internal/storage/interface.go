package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been set or was removed.
var ErrKeyNotFound = errors.New("key not found")

// Provider is a string key-value store. Every document the application
// persists lives under a single key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value access
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys returns every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Utils
	GetConfigPath() string
}

// Watcher is implemented by stores that can report modifications made by
// another process.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}
