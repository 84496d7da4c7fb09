// Package worker mirrors the persisted shopping list into Google Sheets.
// It reacts to items-changed messages and reconciles periodically so a
// missed message only delays the export until the next tick.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tobuy/internal/amqp"
	"tobuy/internal/core"
	applog "tobuy/internal/log"
	"tobuy/internal/sheets"
	"tobuy/internal/storage"
)

type SyncWorker struct {
	store   storage.Store
	sheets  sheets.ListReplacer
	reader  sheets.ListReader
	lastRev int64
}

func NewSyncWorker(store storage.Store, replacer sheets.ListReplacer, reader sheets.ListReader) *SyncWorker {
	return &SyncWorker{
		store:  store,
		sheets: replacer,
		reader: reader,
	}
}

// HandleItemsChanged processes a single items-changed message. Stale
// messages (revision at or below the last exported one) are dropped.
func (w *SyncWorker) HandleItemsChanged(ctx context.Context, msg *amqp.ItemsChangedMessage) error {
	slog.InfoContext(ctx, "Processing items changed message",
		applog.FieldKey, msg.Key,
		applog.FieldRevision, msg.Revision)

	if msg.Key != storage.KeyItems {
		slog.WarnContext(ctx, "Ignoring message for unknown key", applog.FieldKey, msg.Key)
		return nil
	}
	if msg.Revision != 0 && msg.Revision <= w.lastRev {
		slog.InfoContext(ctx, "Skipping stale revision",
			applog.FieldRevision, msg.Revision,
			"last_revision", w.lastRev)
		return nil
	}

	if err := w.Export(ctx); err != nil {
		return err
	}
	if msg.Revision > w.lastRev {
		w.lastRev = msg.Revision
	}
	return nil
}

// Export loads the persisted list and overwrites the sheet with it.
func (w *SyncWorker) Export(ctx context.Context) error {
	items, err := w.loadItems(ctx)
	if err != nil {
		return err
	}
	if err := w.sheets.ReplaceItems(ctx, items); err != nil {
		return fmt.Errorf("replace items in sheet: %w", err)
	}
	slog.InfoContext(ctx, "Exported items to sheet", applog.FieldItemCount, len(items))
	return nil
}

// Reconcile exports only when the sheet has drifted from the store. Used
// on startup and by the periodic ticker.
func (w *SyncWorker) Reconcile(ctx context.Context) error {
	items, err := w.loadItems(ctx)
	if err != nil {
		return err
	}

	if w.reader != nil {
		remote, err := w.reader.ReadItems(ctx)
		if err != nil {
			slog.WarnContext(ctx, "Failed to read sheet, exporting anyway", applog.FieldError, err)
		} else if itemsEqual(items, remote) {
			slog.DebugContext(ctx, "Sheet already up to date", applog.FieldItemCount, len(items))
			return nil
		}
	}

	if err := w.sheets.ReplaceItems(ctx, items); err != nil {
		return fmt.Errorf("replace items in sheet: %w", err)
	}
	slog.InfoContext(ctx, "Reconciled sheet with store", applog.FieldItemCount, len(items))
	return nil
}

func (w *SyncWorker) loadItems(ctx context.Context) ([]core.Item, error) {
	raw, ok, err := w.store.GetItem(ctx, storage.KeyItems)
	if err != nil {
		return nil, fmt.Errorf("load items from store: %w", err)
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

func itemsEqual(a, b []core.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
