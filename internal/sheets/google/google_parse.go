package google

import (
	"strconv"
	"strings"

	"tobuy/internal/core"
)

// itemRow converts an item into one sheet row, column order matching headerRow.
func itemRow(it core.Item) []any {
	return []any{
		it.ID,
		it.Name,
		it.Price,
		it.Quantity,
		it.Category,
		it.Bought,
		it.CreatedAt,
	}
}

// parseItemRow converts a sheet row back into an item. Rows that lack an
// id or a parsable price are skipped; the export is the source of truth,
// so reads are best-effort.
func parseItemRow(cols []string) (core.Item, bool) {
	if len(cols) < 5 {
		return core.Item{}, false
	}
	id := strings.TrimSpace(cols[0])
	name := strings.TrimSpace(cols[1])
	if id == "" || name == "" {
		return core.Item{}, false
	}

	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(cols[2]), ",", "."), 64)
	if err != nil || price <= 0 {
		return core.Item{}, false
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(cols[3]))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	it := core.Item{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Category: strings.TrimSpace(cols[4]),
	}
	if len(cols) >= 6 {
		it.Bought = parseBool(cols[5])
	}
	if len(cols) >= 7 {
		if ts, err := strconv.ParseInt(strings.TrimSpace(cols[6]), 10, 64); err == nil {
			it.CreatedAt = ts
		}
	}
	return it, true
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
