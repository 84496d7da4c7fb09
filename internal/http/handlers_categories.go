package http

import (
	"net/http"

	"tobuy/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Categories []core.Category `json:"categories"`
	}{Categories: s.ledger.Categories()})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	cat, added := s.ledger.AddCategory(r.Context(), p.Get("name"))
	if !added {
		writeError(w, http.StatusUnprocessableEntity, "category name is empty or already exists")
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}
