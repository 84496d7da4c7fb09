// Package core holds the shopping ledger: items, categories, derived
// aggregates and money formatting. Everything here is in-memory and
// synchronous; persistence and transport live elsewhere.
package core

type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// DefaultCategoryEmoji is assigned to user-created categories.
const DefaultCategoryEmoji = "🏷️"

// NewCategoryPalette is cycled through when a user creates a custom
// category: color = palette[len(categories) % len(palette)].
var NewCategoryPalette = []string{
	"#FF6B6B", "#FFD93D", "#6BCB77", "#4D96FF",
	"#C77DFF", "#FF9A3C", "#00B4D8", "#F72585",
}

var defaultCategories = []Category{
	{Name: "Groceries", Color: "#34C759", Emoji: "🛒"},
	{Name: "Clothing", Color: "#FF2D55", Emoji: "👕"},
	{Name: "Electronics", Color: "#007AFF", Emoji: "📱"},
	{Name: "Home & Furniture", Color: "#8E8E93", Emoji: "🏠"},
	{Name: "Appliances", Color: "#00B4D8", Emoji: "🧊"},
	{Name: "Health & Beauty", Color: "#FF9500", Emoji: "💄"},
	{Name: "Transportation", Color: "#5856D6", Emoji: "🚗"},
	{Name: "Education", Color: "#AF52DE", Emoji: "📚"},
	{Name: "Work & Business", Color: "#6A1B9A", Emoji: "💼"},
	{Name: "Entertainment", Color: "#FFD60A", Emoji: "🎮"},
	{Name: "Gifts", Color: "#FF3B30", Emoji: "🎁"},
	{Name: "Other", Color: "#A0A0A0", Emoji: "📦"},
}

// DefaultCategories returns a fresh copy of the predefined category set.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}
