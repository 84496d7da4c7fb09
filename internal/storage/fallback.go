package storage

import (
	"context"
	"log/slog"
	"sync"
)

// Fallback wraps a backend with a transparent in-memory stand-in. Every
// write also lands in memory, so when the backend starts failing the
// session keeps a consistent view; reads fall back to the memory copy.
// Each failing key is logged once, not on every call.
type Fallback struct {
	primary Store
	mem     *MemoryStore

	mu     sync.Mutex
	warned map[string]struct{}
}

func NewFallback(primary Store) *Fallback {
	return &Fallback{
		primary: primary,
		mem:     NewMemoryStore(),
		warned:  make(map[string]struct{}),
	}
}

func (f *Fallback) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := f.primary.GetItem(ctx, key)
	if err == nil {
		return v, ok, nil
	}
	f.warnOnce(ctx, key, "get", err)
	v, ok, _ = f.mem.GetItem(ctx, key)
	return v, ok, nil
}

func (f *Fallback) SetItem(ctx context.Context, key, value string) error {
	// Memory copy first so the current session always has the value.
	_ = f.mem.SetItem(ctx, key, value)
	if err := f.primary.SetItem(ctx, key, value); err != nil {
		f.warnOnce(ctx, key+"_set", "set", err)
	}
	return nil
}

func (f *Fallback) RemoveItem(ctx context.Context, key string) error {
	_ = f.mem.RemoveItem(ctx, key)
	if err := f.primary.RemoveItem(ctx, key); err != nil {
		f.warnOnce(ctx, key+"_remove", "remove", err)
	}
	return nil
}

func (f *Fallback) warnOnce(ctx context.Context, warnKey, op string, err error) {
	f.mu.Lock()
	_, seen := f.warned[warnKey]
	if !seen {
		f.warned[warnKey] = struct{}{}
	}
	f.mu.Unlock()
	if seen {
		return
	}
	slog.WarnContext(ctx, "Storage backend failed, using memory fallback",
		"key", warnKey,
		"operation", op,
		"error", err)
}
