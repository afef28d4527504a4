package http

import (
	"encoding/json"
	"net/http"

	"fintrack/internal/log"
)

// handleIndex serves the bootstrap entry point. When the URL carries
// sync credentials (?token=...&gist=...) they are persisted and the
// client is redirected back to a clean URL so the token never stays in
// the address bar or browser history.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	token := r.URL.Query().Get("token")
	if token != "" {
		gistID := r.URL.Query().Get("gist")
		if _, err := s.tracker.Sync().Connect(r.Context(), token, gistID); err != nil {
			s.logger.ErrorContext(r.Context(), "Bootstrap connect failed",
				log.FieldOperation, log.OpConnect,
				log.FieldError, err.Error())
			writeDomainError(w, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":  "fintrack",
		"theme": s.tracker.Theme(),
		"sync":  s.tracker.Sync().Status(),
	})
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Sync().Status())
}

func (s *Server) handleSyncConnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var body struct {
		Token  string `json:"token"`
		GistID string `json:"gistId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	status, err := s.tracker.Sync().Connect(r.Context(), body.Token, body.GistID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSyncDisconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if err := s.tracker.Sync().Disconnect(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Sync().Status())
}

func (s *Server) handleSyncNow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if !s.tracker.Sync().Enabled() {
		writeError(w, http.StatusConflict, "sync is not connected")
		return
	}
	if err := s.tracker.Sync().PushNow(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Sync().Status())
}
