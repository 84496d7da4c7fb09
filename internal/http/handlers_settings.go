package http

import (
	"net/http"

	"tobuy/internal/core"
)

type settingsResponse struct {
	Currency core.Currency  `json:"currency"`
	Theme    core.ThemeMode `json:"theme"`
	Filter   string         `json:"filter"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsResponse{
		Currency: s.ledger.Currency(),
		Theme:    s.ledger.Theme(),
		Filter:   s.ledger.Filter(),
	})
}

// handleUpdateSettings applies any subset of currency, theme, and filter.
// Unknown currency or theme values reject the whole request; nothing is
// partially applied before validation.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	var (
		setCurrency bool
		code        core.CurrencyCode
		setTheme    bool
		mode        core.ThemeMode
	)
	if p.Has("currency") {
		code = core.CurrencyCode(p.Get("currency"))
		if _, ok := core.CurrencyByCode(code); !ok {
			writeError(w, http.StatusUnprocessableEntity, "unsupported currency")
			return
		}
		setCurrency = true
	}
	if p.Has("theme") {
		mode = core.ThemeMode(p.Get("theme"))
		if mode != core.ThemeLight && mode != core.ThemeDark {
			writeError(w, http.StatusUnprocessableEntity, "unsupported theme")
			return
		}
		setTheme = true
	}

	if setCurrency {
		s.ledger.SetCurrency(r.Context(), code)
	}
	if setTheme {
		s.ledger.SetTheme(r.Context(), mode)
	}
	if p.Has("filter") {
		s.ledger.SetFilter(p.Get("filter"))
	}

	writeJSON(w, http.StatusOK, settingsResponse{
		Currency: s.ledger.Currency(),
		Theme:    s.ledger.Theme(),
		Filter:   s.ledger.Filter(),
	})
}

func (s *Server) handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Currencies []core.Currency `json:"currencies"`
	}{Currencies: core.Currencies})
}

// handleTheme returns the active theme's color table for clients that
// render outside the app process.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.ThemeFor(s.ledger.Theme()))
}
