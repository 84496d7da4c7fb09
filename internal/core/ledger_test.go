package core

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

// testLedger returns a ledger with deterministic ids and timestamps.
func testLedger() *Ledger {
	l := NewLedger()
	var seq int
	l.newID = func() string {
		seq++
		return "id-" + strconv.Itoa(seq)
	}
	var tick int64
	l.now = func() time.Time {
		tick++
		return time.UnixMilli(1700000000000 + tick)
	}
	return l
}

func TestAddItem(t *testing.T) {
	l := testLedger()

	it, err := l.AddItem("  Milk  ", "8.50", "2", "Groceries")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if it.Name != "Milk" {
		t.Fatalf("expected trimmed name, got %q", it.Name)
	}
	if it.Price != 8.5 || it.Quantity != 2 || it.Bought {
		t.Fatalf("unexpected item %+v", it)
	}

	// Newest first.
	second, err := l.AddItem("Bread", "3", "1", "Groceries")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	items := l.Items()
	if len(items) != 2 || items[0].ID != second.ID {
		t.Fatalf("expected newest item first, got %+v", items)
	}
}

func TestAddItemRejections(t *testing.T) {
	cases := []struct {
		name, price string
		wantErr     error
	}{
		{"", "10", ErrEmptyName},
		{"   ", "10", ErrEmptyName},
		{"Milk", "-5", ErrInvalidPrice},
		{"Milk", "0", ErrInvalidPrice},
		{"Milk", "abc", ErrInvalidPrice},
		{"Milk", "", ErrInvalidPrice},
	}
	for _, tc := range cases {
		l := testLedger()
		if _, err := l.AddItem(tc.name, tc.price, "1", "Groceries"); !errors.Is(err, tc.wantErr) {
			t.Fatalf("AddItem(%q, %q): expected %v, got %v", tc.name, tc.price, tc.wantErr, err)
		}
		if len(l.Items()) != 0 {
			t.Fatalf("rejected AddItem must leave items unchanged")
		}
	}
}

func TestAddItemQuantityFloor(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"1", 1},
		{"0", 1},
		{"-2", 1},
		{"x", 1},
		{"", 1},
	}
	for _, tc := range cases {
		l := testLedger()
		it, err := l.AddItem("Milk", "1", tc.in, "Groceries")
		if err != nil {
			t.Fatalf("quantity %q: unexpected error %v", tc.in, err)
		}
		if it.Quantity != tc.want {
			t.Fatalf("quantity %q: expected %d, got %d", tc.in, tc.want, it.Quantity)
		}
	}
}

func TestEditItem(t *testing.T) {
	l := testLedger()
	orig, _ := l.AddItem("Milk", "8.50", "1", "Groceries")
	l.ToggleBought(orig.ID)

	got, err := l.EditItem(orig.ID, "Oat Milk", "9.00", "2", "Other")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if got.ID != orig.ID || got.CreatedAt != orig.CreatedAt {
		t.Fatalf("edit must preserve id and createdAt: %+v vs %+v", got, orig)
	}
	if !got.Bought {
		t.Fatalf("edit must preserve bought flag")
	}
	if got.Name != "Oat Milk" || got.Price != 9.0 || got.Quantity != 2 || got.Category != "Other" {
		t.Fatalf("unexpected edited item %+v", got)
	}

	if _, err := l.EditItem("missing", "X", "1", "1", "Other"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestEditItemRoundTrip(t *testing.T) {
	l := testLedger()
	l.AddItem("Milk", "8.50", "2", "Groceries")
	orig := l.Items()[0]
	before := Summarize(l.Items())

	if _, err := l.EditItem(orig.ID, orig.Name, "8.50", "2", orig.Category); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	after := Summarize(l.Items())
	if before != after {
		t.Fatalf("round-trip edit changed aggregates: %+v vs %+v", before, after)
	}
}

func TestToggleAndDelete(t *testing.T) {
	l := testLedger()
	it, _ := l.AddItem("Milk", "8.50", "1", "Groceries")

	if !l.ToggleBought(it.ID) || !l.Items()[0].Bought {
		t.Fatalf("toggle should mark item bought")
	}
	if !l.ToggleBought(it.ID) || l.Items()[0].Bought {
		t.Fatalf("second toggle should mark item pending again")
	}
	if l.ToggleBought("missing") {
		t.Fatalf("toggling an unknown id must be a no-op")
	}

	if !l.DeleteItem(it.ID) || len(l.Items()) != 0 {
		t.Fatalf("delete should remove the item")
	}
	if l.DeleteItem(it.ID) {
		t.Fatalf("deleting an absent id must be a no-op")
	}
}

func TestAddCategory(t *testing.T) {
	l := testLedger()
	base := len(l.Categories())

	cat, ok := l.AddCategory("  Books ")
	if !ok {
		t.Fatalf("expected category added")
	}
	if cat.Name != "Books" || cat.Emoji != DefaultCategoryEmoji {
		t.Fatalf("unexpected category %+v", cat)
	}
	if want := NewCategoryPalette[base%len(NewCategoryPalette)]; cat.Color != want {
		t.Fatalf("expected palette color %s, got %s", want, cat.Color)
	}

	// Case-insensitive duplicate is silently ignored.
	if _, ok := l.AddCategory("books"); ok {
		t.Fatalf("duplicate category must be rejected")
	}
	if _, ok := l.AddCategory("   "); ok {
		t.Fatalf("blank category must be rejected")
	}
	if got := len(l.Categories()); got != base+1 {
		t.Fatalf("expected %d categories, got %d", base+1, got)
	}
}

func TestAddCategoryPaletteCycles(t *testing.T) {
	l := testLedger()
	for i := 0; i < len(NewCategoryPalette)+2; i++ {
		before := len(l.Categories())
		cat, ok := l.AddCategory("Custom " + strconv.Itoa(i))
		if !ok {
			t.Fatalf("category %d not added", i)
		}
		if want := NewCategoryPalette[before%len(NewCategoryPalette)]; cat.Color != want {
			t.Fatalf("category %d: expected color %s, got %s", i, want, cat.Color)
		}
	}
}

func TestSeedDemo(t *testing.T) {
	l := testLedger()
	l.SeedDemo()
	items := l.Items()
	if len(items) != 5 {
		t.Fatalf("expected 5 demo items, got %d", len(items))
	}
	// Newest first: the gift was added last.
	if items[0].Name != "Birthday Gift — Alex" {
		t.Fatalf("expected newest demo item first, got %q", items[0].Name)
	}
	s := Summarize(items)
	if s.BoughtCount != 1 {
		t.Fatalf("expected one pre-bought demo item, got %d", s.BoughtCount)
	}
	// Seeding twice must not duplicate.
	l.SeedDemo()
	if len(l.Items()) != 5 {
		t.Fatalf("second seed must be a no-op")
	}
}

func TestSetCurrencyAndTheme(t *testing.T) {
	l := testLedger()
	if !l.SetCurrency(JPY) || l.Currency().Code != JPY {
		t.Fatalf("expected JPY active")
	}
	if l.SetCurrency("XXX") {
		t.Fatalf("unknown currency must be rejected")
	}
	if l.Currency().Code != JPY {
		t.Fatalf("rejected switch must not change currency")
	}

	if got := l.ToggleTheme(); got != ThemeDark {
		t.Fatalf("expected dark after toggle, got %s", got)
	}
	if !l.SetTheme(ThemeLight) || l.Theme() != ThemeLight {
		t.Fatalf("expected light theme")
	}
	if l.SetTheme("sepia") {
		t.Fatalf("unknown theme must be rejected")
	}
}
