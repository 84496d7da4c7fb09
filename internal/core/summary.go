package core

import "sort"

// Base filters; any other filter value is treated as a category name.
const (
	FilterAll     = "All"
	FilterPending = "Pending"
	FilterBought  = "Bought"
)

// Summary is the derived budget overview. All fields are recomputed from
// the current items on every call; nothing is cached.
type Summary struct {
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	Progress    float64 `json:"progress"` // spent/budget, 0 when budget is 0
	BoughtCount int     `json:"boughtCount"`
	ItemCount   int     `json:"itemCount"`
}

func Summarize(items []Item) Summary {
	var s Summary
	s.ItemCount = len(items)
	for _, it := range items {
		t := LineTotal(it)
		s.Budget += t
		if it.Bought {
			s.Spent += t
			s.BoughtCount++
		}
	}
	s.Remaining = s.Budget - s.Spent
	if s.Budget > 0 {
		s.Progress = s.Spent / s.Budget
	}
	return s
}

// CategoryStat aggregates the items of one category.
type CategoryStat struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Spent float64 `json:"spent"`
	Count int     `json:"count"`
}

// CategoryBreakdown groups items by category name, descending by total.
// Categories with no items are omitted. Ties keep first-encountered order,
// which is the order categories appear in the item list.
func CategoryBreakdown(items []Item) []CategoryStat {
	index := make(map[string]int)
	var stats []CategoryStat
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(stats)
			index[it.Category] = i
			stats = append(stats, CategoryStat{Name: it.Category})
		}
		t := LineTotal(it)
		stats[i].Total += t
		stats[i].Count++
		if it.Bought {
			stats[i].Spent += t
		}
	}
	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Total > stats[b].Total
	})
	return stats
}

// FilterItems applies a filter value: the base All/Pending/Bought filters,
// or exact category-name equality. Unknown names yield an empty list.
func FilterItems(items []Item, filter string) []Item {
	var out []Item
	for _, it := range items {
		switch filter {
		case FilterAll, "":
			out = append(out, it)
		case FilterPending:
			if !it.Bought {
				out = append(out, it)
			}
		case FilterBought:
			if it.Bought {
				out = append(out, it)
			}
		default:
			if it.Category == filter {
				out = append(out, it)
			}
		}
	}
	return out
}

// TopExpensivePending returns the n unbought items with the highest line
// totals, descending. The sort is stable: ties keep their relative order
// in the list.
func TopExpensivePending(items []Item, n int) []Item {
	pending := FilterItems(items, FilterPending)
	sort.SliceStable(pending, func(a, b int) bool {
		return LineTotal(pending[a]) > LineTotal(pending[b])
	})
	if len(pending) > n {
		pending = pending[:n]
	}
	return pending
}
