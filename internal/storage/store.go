// Package storage provides the key-value persistence gateway. Every piece of
// state persists as a whole string blob under a fixed key; callers read the
// full blob, transform, and write it back. Two processes sharing one store
// interleave last-write-wins; nothing here guards against that.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Persisted state keys. The names come from the browser-storage layout this
// store replaces.
const (
	KeyTasks   = "todoTasks"
	KeyHistory = "todoProgress"
	KeyFilters = "todoFilters"
	KeySearch  = "todoSearch"
	KeyTheme   = "todoTheme"
)

type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set replaces the blob stored under key.
	Set(ctx context.Context, key, value string) error
	// Delete removes the key; a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}
