// Package handlers adapts the search engine to HTTP. It is a thin layer: all
// filtering, scoring and ranking lives in internal/search.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bookmate-hq/bookmate/internal/search"
)

type Handler struct {
	searcher *search.Searcher
}

// New creates a handler over a searcher.
func New(searcher *search.Searcher) *Handler {
	return &Handler{searcher: searcher}
}

// HandleSearch serves GET /api/search?q=&active=&genre=.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		params := r.URL.Query()

		activeOnly, err := strconv.ParseBool(params.Get("active"))
		if err != nil {
			activeOnly = false
		}

		resp := h.searcher.Search(params.Get("q"), activeOnly, params.Get("genre"))
		h.writeJSON(w, resp)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
