package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tobuy/internal/core"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	filter := sanitizeInput(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = s.ledger.Filter()
	}
	items := s.ledger.Items(filter)
	writeJSON(w, http.StatusOK, struct {
		Items  []core.Item `json:"items"`
		Filter string      `json:"filter"`
	}{Items: items, Filter: filter})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	it, err := s.ledger.AddItem(r.Context(), p.Get("name"), p.Get("price"), p.Get("quantity"), p.Get("category"))
	if err != nil {
		writeValidationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	it, err := s.ledger.EditItem(r.Context(), id, p.Get("name"), p.Get("price"), p.Get("quantity"), p.Get("category"))
	if err != nil {
		writeValidationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.ledger.ToggleBought(r.Context(), id) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Summary core.Summary `json:"summary"`
	}{Summary: s.ledger.Summary()})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.ledger.DeleteItem(r.Context(), id) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeValidationError maps ledger errors onto HTTP statuses: unknown ids
// are 404, validation failures 422.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, core.ErrEmptyName), errors.Is(err, core.ErrInvalidPrice):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Unexpected ledger error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
