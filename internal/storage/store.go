// Package storage is the key-value persistence boundary. The ledger state
// is stored as opaque string values under a handful of fixed keys; the
// backends only ever see keys and values, never ledger types.
package storage

import (
	"context"
	"fmt"
)

// Fixed keys, shared with the mobile clients.
const (
	KeyItems    = "tobuy_items"
	KeyTheme    = "tobuy_theme"
	KeyCurrency = "tobuy_currency"
)

// Store is the storage collaborator contract: get returns (value, found),
// set and remove are best-effort from the caller's point of view (callers
// log set failures, they never propagate them as ledger errors).
type Store interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Closer is implemented by backends that hold resources.
type Closer interface {
	Close() error
}

// Open selects a backend by name. The returned store is already wrapped in
// the memory fallback, so callers get degraded-but-working storage even
// when the backend cannot be opened or fails later.
func Open(backend, sqlitePath, dataDir string) (Store, error) {
	switch backend {
	case "sqlite":
		s, err := NewSQLiteStore(sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return NewFallback(s), nil
	case "file":
		s, err := NewFileStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return NewFallback(s), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// CloseStore closes the underlying backend if it holds resources,
// unwrapping the fallback layer.
func CloseStore(s Store) error {
	if f, ok := s.(*Fallback); ok {
		s = f.primary
	}
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
