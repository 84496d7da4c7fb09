// Package widget builds the read-only home-screen summary: the five most
// expensive pending items, rendered to a JSON snapshot file a platform
// widget host can display without talking to the app process.
package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tobuy/internal/core"
	applog "tobuy/internal/log"
	"tobuy/internal/storage"
)

// TopItemCount is how many pending items the widget shows.
const TopItemCount = 5

// EmptyMessage is shown when nothing is pending.
const EmptyMessage = "No pending items found."

type Line struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

type Snapshot struct {
	GeneratedAt int64  `json:"generatedAt"`
	Currency    string `json:"currency"`
	Message     string `json:"message,omitempty"`
	Lines       []Line `json:"lines"`
}

// BuildSnapshot selects the top pending items and formats them with the
// given currency. Quantity is appended as "(xN)" only when above one.
func BuildSnapshot(items []core.Item, currency core.Currency, now time.Time) Snapshot {
	snap := Snapshot{
		GeneratedAt: now.UnixMilli(),
		Currency:    string(currency.Code),
	}
	top := core.TopExpensivePending(items, TopItemCount)
	if len(top) == 0 {
		snap.Message = EmptyMessage
		return snap
	}
	snap.Lines = make([]Line, 0, len(top))
	for _, it := range top {
		name := it.Name
		if it.Quantity > 1 {
			name = fmt.Sprintf("%s (x%d)", it.Name, it.Quantity)
		}
		snap.Lines = append(snap.Lines, Line{
			Name:  name,
			Total: currency.FormatPrice(core.LineTotal(it)),
		})
	}
	return snap
}

// Renderer loads persisted state and writes snapshots atomically, so the
// widget host never observes a half-written file.
type Renderer struct {
	store storage.Store
	path  string
	now   func() time.Time
}

func NewRenderer(store storage.Store, path string) *Renderer {
	return &Renderer{store: store, path: path, now: time.Now}
}

// Render reads items and currency from the store, builds a snapshot, and
// writes it to the configured path.
func (r *Renderer) Render(ctx context.Context) error {
	items, err := r.loadItems(ctx)
	if err != nil {
		return err
	}

	currency, _ := core.CurrencyByCode(core.USD)
	if v, ok, _ := r.store.GetItem(ctx, storage.KeyCurrency); ok {
		if c, found := core.CurrencyByCode(core.CurrencyCode(v)); found {
			currency = c
		}
	}

	snap := BuildSnapshot(items, currency, r.now())
	if err := r.write(snap); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Widget snapshot rendered",
		applog.FieldPath, r.path,
		"line_count", len(snap.Lines))
	return nil
}

func (r *Renderer) loadItems(ctx context.Context) ([]core.Item, error) {
	raw, ok, err := r.store.GetItem(ctx, storage.KeyItems)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if !ok {
		return nil, nil
	}
	items, err := core.DecodeItems(raw)
	if err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func (r *Renderer) write(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
