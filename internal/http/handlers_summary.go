package http

import (
	"net/http"
	"time"

	"tobuy/internal/core"
	"tobuy/internal/widget"
)

// summaryResponse carries the raw aggregates plus display strings in the
// active currency, so clients never re-implement the formatting rules.
type summaryResponse struct {
	core.Summary
	Currency         core.CurrencyCode `json:"currency"`
	BudgetDisplay    string            `json:"budgetDisplay"`
	SpentDisplay     string            `json:"spentDisplay"`
	RemainingDisplay string            `json:"remainingDisplay"`
	BudgetCompact    string            `json:"budgetCompact"`
	SpentCompact     string            `json:"spentCompact"`
	RemainingCompact string            `json:"remainingCompact"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum := s.ledger.Summary()
	cur := s.ledger.Currency()
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:          sum,
		Currency:         cur.Code,
		BudgetDisplay:    cur.FormatPrice(sum.Budget),
		SpentDisplay:     cur.FormatPrice(sum.Spent),
		RemainingDisplay: cur.FormatPrice(sum.Remaining),
		BudgetCompact:    cur.FormatCompact(sum.Budget),
		SpentCompact:     cur.FormatCompact(sum.Spent),
		RemainingCompact: cur.FormatCompact(sum.Remaining),
	})
}

type breakdownRow struct {
	core.CategoryStat
	TotalDisplay string `json:"totalDisplay"`
	SpentDisplay string `json:"spentDisplay"`
	Emoji        string `json:"emoji,omitempty"`
	Color        string `json:"color,omitempty"`
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	stats := s.ledger.Breakdown()
	cur := s.ledger.Currency()

	rows := make([]breakdownRow, 0, len(stats))
	for _, st := range stats {
		row := breakdownRow{
			CategoryStat: st,
			TotalDisplay: cur.FormatPrice(st.Total),
			SpentDisplay: cur.FormatPrice(st.Spent),
		}
		if cat, ok := s.ledger.CategoryByName(st.Name); ok {
			row.Emoji = cat.Emoji
			row.Color = cat.Color
		}
		rows = append(rows, row)
	}
	writeJSON(w, http.StatusOK, struct {
		Breakdown []breakdownRow `json:"breakdown"`
	}{Breakdown: rows})
}

// handleWidgetPreview renders the same snapshot the widget host shows,
// straight from live state instead of the persisted copy.
func (s *Server) handleWidgetPreview(w http.ResponseWriter, r *http.Request) {
	snap := widget.BuildSnapshot(s.ledger.Items(core.FilterAll), s.ledger.Currency(), time.Now())
	writeJSON(w, http.StatusOK, snap)
}
