// Package services orchestrates the in-memory ledger with the storage and
// messaging collaborators. Mutations are synchronous; persistence and
// change notifications are best-effort and never surface as errors to the
// caller, so the ledger is always in a valid in-memory state.
package services

import (
	"context"
	"log/slog"
	"sync"

	"tobuy/internal/core"
	applog "tobuy/internal/log"
	"tobuy/internal/storage"
)

// Notifier publishes items-changed events. *amqp.Client satisfies it; a
// nil Notifier disables notifications.
type Notifier interface {
	PublishItemsChanged(ctx context.Context, key string, revision int64) error
}

// LedgerService owns the ledger for the lifetime of the process. All
// access is serialized through its mutex; the ledger itself stays
// single-threaded as designed.
type LedgerService struct {
	mu       sync.Mutex
	ledger   *core.Ledger
	store    storage.Store
	notifier Notifier
	revision int64
}

func NewLedgerService(store storage.Store, notifier Notifier) *LedgerService {
	return &LedgerService{
		ledger:   core.NewLedger(),
		store:    store,
		notifier: notifier,
	}
}

// Hydrate restores persisted state, falling back to the demo seed when
// nothing is stored or the payload does not decode. Load problems are
// logged and swallowed; the service always ends up usable.
func (s *LedgerService) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.GetItem(ctx, storage.KeyItems)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load items, starting from demo seed", applog.FieldError, err)
	}
	if items, derr := core.DecodeItems(raw); ok && derr == nil {
		s.ledger.ReplaceItems(items)
	} else {
		if ok && derr != nil {
			slog.WarnContext(ctx, "Persisted items did not decode, starting from demo seed",
				applog.FieldKey, storage.KeyItems,
				applog.FieldError, derr)
		}
		s.ledger.SeedDemo()
		s.persistItemsLocked(ctx)
	}

	if v, ok, _ := s.store.GetItem(ctx, storage.KeyCurrency); ok {
		if !s.ledger.SetCurrency(core.CurrencyCode(v)) {
			slog.WarnContext(ctx, "Ignoring unknown persisted currency", applog.FieldCurrency, v)
		}
	}
	if v, ok, _ := s.store.GetItem(ctx, storage.KeyTheme); ok {
		if !s.ledger.SetTheme(core.ThemeMode(v)) {
			slog.WarnContext(ctx, "Ignoring unknown persisted theme", applog.FieldTheme, v)
		}
	}

	slog.InfoContext(ctx, "Ledger hydrated",
		applog.FieldItemCount, len(s.ledger.Items()),
		applog.FieldCurrency, string(s.ledger.Currency().Code),
		applog.FieldTheme, string(s.ledger.Theme()))
}

func (s *LedgerService) AddItem(ctx context.Context, name, price, quantity, category string) (core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.ledger.AddItem(name, price, quantity, category)
	if err != nil {
		return core.Item{}, err
	}
	s.itemsChangedLocked(ctx)
	slog.InfoContext(ctx, "Item added",
		applog.FieldItemID, it.ID,
		applog.FieldItemName, it.Name,
		applog.FieldPrice, it.Price,
		applog.FieldQuantity, it.Quantity,
		applog.FieldCategory, it.Category)
	return it, nil
}

func (s *LedgerService) EditItem(ctx context.Context, id, name, price, quantity, category string) (core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.ledger.EditItem(id, name, price, quantity, category)
	if err != nil {
		return core.Item{}, err
	}
	s.itemsChangedLocked(ctx)
	slog.InfoContext(ctx, "Item edited", applog.FieldItemID, it.ID, applog.FieldItemName, it.Name)
	return it, nil
}

func (s *LedgerService) ToggleBought(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.ledger.ToggleBought(id)
	if found {
		s.itemsChangedLocked(ctx)
	}
	return found
}

func (s *LedgerService) DeleteItem(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.ledger.DeleteItem(id)
	if found {
		s.itemsChangedLocked(ctx)
		slog.InfoContext(ctx, "Item deleted", applog.FieldItemID, id)
	}
	return found
}

func (s *LedgerService) AddCategory(ctx context.Context, name string) (core.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, added := s.ledger.AddCategory(name)
	if added {
		slog.InfoContext(ctx, "Category added", applog.FieldCategory, cat.Name)
	}
	return cat, added
}

// Items returns the current list through a filter value (All, Pending,
// Bought, or a category name).
func (s *LedgerService) Items(filter string) []core.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.FilterItems(s.ledger.Items(), filter)
}

func (s *LedgerService) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Categories()
}

func (s *LedgerService) CategoryByName(name string) (core.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CategoryByName(name)
}

func (s *LedgerService) Summary() core.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.ledger.Items())
}

func (s *LedgerService) Breakdown() []core.CategoryStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.CategoryBreakdown(s.ledger.Items())
}

func (s *LedgerService) TopPending(n int) []core.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.TopExpensivePending(s.ledger.Items(), n)
}

func (s *LedgerService) Currency() core.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Currency()
}

func (s *LedgerService) SetCurrency(ctx context.Context, code core.CurrencyCode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.SetCurrency(code) {
		return false
	}
	s.persistValueLocked(ctx, storage.KeyCurrency, string(code))
	slog.InfoContext(ctx, "Currency switched", applog.FieldCurrency, string(code))
	return true
}

func (s *LedgerService) Theme() core.ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Theme()
}

func (s *LedgerService) SetTheme(ctx context.Context, mode core.ThemeMode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.SetTheme(mode) {
		return false
	}
	s.persistValueLocked(ctx, storage.KeyTheme, string(mode))
	return true
}

func (s *LedgerService) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Filter()
}

func (s *LedgerService) SetFilter(filter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.SetFilter(filter)
}

// Revision counts applied item mutations since startup. Carried in
// items-changed messages so consumers can spot reordering.
func (s *LedgerService) Revision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// itemsChangedLocked persists the item list and notifies consumers after
// a successful mutation. Both are best-effort: a failed write is already
// handled by the storage fallback, a failed publish is logged.
func (s *LedgerService) itemsChangedLocked(ctx context.Context) {
	s.revision++
	s.persistItemsLocked(ctx)
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishItemsChanged(ctx, storage.KeyItems, s.revision); err != nil {
		slog.WarnContext(ctx, "Failed to publish items changed message",
			applog.FieldRevision, s.revision,
			applog.FieldError, err)
	}
}

func (s *LedgerService) persistItemsLocked(ctx context.Context) {
	data, err := core.EncodeItems(s.ledger.Items())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode items", applog.FieldError, err)
		return
	}
	s.persistValueLocked(ctx, storage.KeyItems, data)
}

func (s *LedgerService) persistValueLocked(ctx context.Context, key, value string) {
	if err := s.store.SetItem(ctx, key, value); err != nil {
		slog.WarnContext(ctx, "Failed to persist value", applog.FieldKey, key, applog.FieldError, err)
	}
}
