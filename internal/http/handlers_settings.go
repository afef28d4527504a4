package http

import (
	"encoding/json"
	"io"
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]float64{"budget": s.tracker.Budget()})
	case http.MethodPut:
		var body struct {
			Budget float64 `json:"budget"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.tracker.SetBudget(r.Context(), body.Budget); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]float64{"budget": s.tracker.Budget()})
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]core.Theme{"theme": s.tracker.Theme()})
	case http.MethodPut:
		var body struct {
			Theme string `json:"theme"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		theme, err := s.tracker.SetTheme(r.Context(), body.Theme)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]core.Theme{"theme": theme})
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="finance-backup.json"`)
	writeJSON(w, http.StatusOK, s.tracker.Export())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	replace := r.URL.Query().Get("mode") == "replace"

	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return
	}

	n, err := s.tracker.Import(r.Context(), body, replace)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"imported": n,
		"total":    len(s.tracker.All()),
	})
}
