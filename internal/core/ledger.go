package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ledger is the in-memory shopping list: the ordered items (newest first),
// the category set, and the active filter/currency/theme selections.
//
// The ledger is not safe for concurrent use; callers that share one across
// goroutines must serialize access (the service layer does).
type Ledger struct {
	items      []Item
	categories []Category
	filter     string
	currency   CurrencyCode
	theme      ThemeMode

	now   func() time.Time
	newID func() string
}

func NewLedger() *Ledger {
	return &Ledger{
		categories: DefaultCategories(),
		filter:     FilterAll,
		currency:   USD,
		theme:      ThemeLight,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
}

// SeedDemo fills an empty ledger with the demo shopping list shown on
// first launch, before anything has been persisted.
func (l *Ledger) SeedDemo() {
	if len(l.items) > 0 {
		return
	}
	base := l.now().UnixMilli()
	demo := []struct {
		name     string
		price    float64
		category string
		bought   bool
	}{
		{"Milk & Bread", 8.50, "Groceries", false},
		{"Air Fryer", 120.00, "Appliances", false},
		{"Running Shoes", 75.00, "Clothing", true},
		{"Bluetooth Headphones", 59.99, "Electronics", false},
		{"Birthday Gift — Alex", 40.00, "Gifts", false},
	}
	for i, d := range demo {
		it := Item{
			ID:        l.newID(),
			Name:      d.name,
			Price:     d.price,
			Quantity:  1,
			Category:  d.category,
			Bought:    d.bought,
			CreatedAt: base - int64(len(demo)-i)*1000,
		}
		l.items = append([]Item{it}, l.items...)
	}
}

// Items returns a copy of the item list, newest first.
func (l *Ledger) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// ReplaceItems swaps the whole item list, used when hydrating from storage.
func (l *Ledger) ReplaceItems(items []Item) {
	l.items = make([]Item, len(items))
	copy(l.items, items)
}

// Categories returns a copy of the category list in creation order.
func (l *Ledger) Categories() []Category {
	out := make([]Category, len(l.categories))
	copy(out, l.categories)
	return out
}

// AddItem validates and prepends a new item. Name is trimmed and must be
// non-empty; price must parse to a finite positive decimal; quantity
// defaults to 1 on bad input. Nothing is mutated on a validation error.
func (l *Ledger) AddItem(name, price, quantity, category string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrEmptyName
	}
	p, err := ParsePrice(price)
	if err != nil {
		return Item{}, err
	}
	it := Item{
		ID:        l.newID(),
		Name:      name,
		Price:     p,
		Quantity:  ParseQuantity(quantity),
		Category:  strings.TrimSpace(category),
		Bought:    false,
		CreatedAt: l.now().UnixMilli(),
	}
	l.items = append([]Item{it}, l.items...)
	return it, nil
}

// EditItem applies the same validation as AddItem to the item with the
// given id, replacing its mutable fields in place. ID, CreatedAt and the
// bought flag are preserved. Returns ErrItemNotFound for unknown ids.
func (l *Ledger) EditItem(id, name, price, quantity, category string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrEmptyName
	}
	p, err := ParsePrice(price)
	if err != nil {
		return Item{}, err
	}
	for i := range l.items {
		if l.items[i].ID != id {
			continue
		}
		l.items[i].Name = name
		l.items[i].Price = p
		l.items[i].Quantity = ParseQuantity(quantity)
		l.items[i].Category = strings.TrimSpace(category)
		return l.items[i], nil
	}
	return Item{}, ErrItemNotFound
}

// ToggleBought flips the bought flag of the item with the given id and
// reports whether the item existed. An unknown id is a no-op, not an error:
// callers only ever hold ids handed out by this ledger.
func (l *Ledger) ToggleBought(id string) bool {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Bought = !l.items[i].Bought
			return true
		}
	}
	return false
}

// DeleteItem removes the item with the given id and reports whether it
// existed. Unknown ids are a no-op.
func (l *Ledger) DeleteItem(id string) bool {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// AddCategory appends a user category. The name is trimmed; empty names
// and case-insensitive duplicates are silently rejected (reported via the
// second return, never an error). Colors cycle through NewCategoryPalette
// by creation index.
func (l *Ledger) AddCategory(name string) (Category, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Category{}, false
	}
	for _, c := range l.categories {
		if strings.EqualFold(c.Name, trimmed) {
			return Category{}, false
		}
	}
	cat := Category{
		Name:  trimmed,
		Color: NewCategoryPalette[len(l.categories)%len(NewCategoryPalette)],
		Emoji: DefaultCategoryEmoji,
	}
	l.categories = append(l.categories, cat)
	return cat, true
}

// CategoryByName looks a category up by exact name.
func (l *Ledger) CategoryByName(name string) (Category, bool) {
	for _, c := range l.categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

func (l *Ledger) Filter() string { return l.filter }

// SetFilter accepts anything: base filters, known category names, and
// unknown names (which simply match no items).
func (l *Ledger) SetFilter(filter string) { l.filter = filter }

func (l *Ledger) Currency() Currency {
	c, _ := CurrencyByCode(l.currency)
	return c
}

// SetCurrency switches the active currency and reports whether the code is
// one of the supported set. Switching re-labels amounts, it never converts.
func (l *Ledger) SetCurrency(code CurrencyCode) bool {
	if _, ok := CurrencyByCode(code); !ok {
		return false
	}
	l.currency = code
	return true
}

func (l *Ledger) Theme() ThemeMode { return l.theme }

func (l *Ledger) SetTheme(mode ThemeMode) bool {
	if mode != ThemeLight && mode != ThemeDark {
		return false
	}
	l.theme = mode
	return true
}

func (l *Ledger) ToggleTheme() ThemeMode {
	if l.theme == ThemeLight {
		l.theme = ThemeDark
	} else {
		l.theme = ThemeLight
	}
	return l.theme
}
