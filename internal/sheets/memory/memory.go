// Package memory is an in-process stand-in for the Google Sheets adapter,
// used in tests and when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"tobuy/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Item
}

func New() *Store {
	return &Store{}
}

func (s *Store) ReplaceItems(_ context.Context, items []core.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Item(nil), items...)
	return nil
}

func (s *Store) ReadItems(_ context.Context) ([]core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Item(nil), s.items...), nil
}
