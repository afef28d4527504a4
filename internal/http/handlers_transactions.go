package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/services"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodDelete:
		s.handleClearTransactions(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list := s.tracker.List(f)
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": list,
		"count":        len(list),
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in services.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.Description = sanitizeInput(in.Description)

	tx, err := s.tracker.Add(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	n := s.tracker.ClearAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}

// handleTransactionByID serves /api/transactions/{id} and
// /api/transactions/{id}/split.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	toggle := false
	if strings.HasSuffix(rest, "/split") {
		rest = strings.TrimSuffix(rest, "/split")
		toggle = true
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if toggle {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		tx, ok := s.tracker.ToggleSplit(r.Context(), id)
		if !ok {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeJSON(w, http.StatusOK, tx)
		return
	}

	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}
	// Deletion is idempotent, an unknown id is a silent no-op.
	s.tracker.Delete(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
