package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/report"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report.Summarize(s.tracker.List(f)))
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The breakdown defaults to spending; ?type=income flips it.
	typ := core.Expense
	if f.Type == core.TypeIncome {
		typ = core.Income
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"breakdown": report.CategoryBreakdown(s.tracker.List(f), typ),
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	// The trend chart always spans the trailing months of the full
	// list, so list filters do not apply here.
	writeJSON(w, http.StatusOK, map[string]any{
		"series": report.MonthlySeries(s.tracker.All(), s.tracker.Now()),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report.BuildInsights(s.tracker.List(f), f.Split))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildQuickStats(s.tracker.All(), s.tracker.Now()))
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, report.BudgetUsage(s.tracker.All(), s.tracker.Budget(), s.tracker.Now()))
}
