package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/remote"
	"fintrack/internal/remote/memory"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/store"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	mem := memory.New()
	factory := func(context.Context, string) (remote.Store, error) {
		return mem, nil
	}

	logger := log.New(log.DefaultConfig())
	st := store.New()
	syncSvc := services.NewSyncService(st, repo, factory, 10*time.Millisecond, logger)
	t.Cleanup(syncSvc.Stop)
	tracker := services.NewTracker(st, repo, syncSvc, logger)

	if err := tracker.Startup(context.Background()); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	return NewServer(":0", tracker, logger), mem
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func createTransaction(t *testing.T, srv *Server, body string) core.Transaction {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var tx core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decode created transaction: %v", err)
	}
	return tx
}

func TestCreateAndListTransactions(t *testing.T) {
	srv, _ := newTestServer(t)

	tx := createTransaction(t, srv, `{"type":"expense","description":"Dinner","category":"🍔 Food & Dining","amount":30,"date":"2025-03-15"}`)
	if tx.ID == 0 {
		t.Error("created transaction has no id")
	}
	createTransaction(t, srv, `{"type":"income","description":"Salary","category":"💼 Salary","amount":2000,"date":"2025-03-01"}`)

	rec := doRequest(t, srv, http.MethodGet, "/api/transactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var body struct {
		Transactions []core.Transaction `json:"transactions"`
		Count        int                `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want 2", body.Count)
	}
	if body.Transactions[0].Description != "Salary" {
		t.Errorf("list not newest-first: %+v", body.Transactions)
	}

	// Type filter narrows the list.
	rec = doRequest(t, srv, http.MethodGet, "/api/transactions?type=expense", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 1 || body.Transactions[0].Description != "Dinner" {
		t.Errorf("filtered list = %+v", body.Transactions)
	}
}

func TestCreateTransaction_ValidationError(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/transactions", `{"type":"expense","description":"","category":"🍔 Food & Dining","amount":30,"date":"2025-03-15"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/transactions", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListTransactions_RejectsUnknownFilter(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/api/transactions?split=both",
		"/api/transactions?type=transfer",
		"/api/transactions?period=year",
		"/api/transactions?month=March",
	} {
		rec := doRequest(t, srv, http.MethodGet, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestDeleteTransaction_Idempotent(t *testing.T) {
	srv, _ := newTestServer(t)
	tx := createTransaction(t, srv, `{"type":"expense","description":"Dinner","category":"🍔 Food & Dining","amount":30,"date":"2025-03-15"}`)

	path := "/api/transactions/" + strconv.FormatInt(tx.ID, 10)
	if rec := doRequest(t, srv, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	// Deleting again is still a success.
	if rec := doRequest(t, srv, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Errorf("second delete status = %d, want 204", rec.Code)
	}

	if rec := doRequest(t, srv, http.MethodDelete, "/api/transactions/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

func TestToggleSplit(t *testing.T) {
	srv, _ := newTestServer(t)
	tx := createTransaction(t, srv, `{"type":"expense","description":"Dinner","category":"🍔 Food & Dining","amount":30,"date":"2025-03-15"}`)

	path := "/api/transactions/" + strconv.FormatInt(tx.ID, 10) + "/split"
	rec := doRequest(t, srv, http.MethodPost, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", rec.Code)
	}

	var got core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.IsSplitwise {
		t.Error("toggle did not set the flag")
	}

	if rec := doRequest(t, srv, http.MethodPost, "/api/transactions/999/split", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id toggle status = %d, want 404", rec.Code)
	}
}

func TestBudgetEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/budget", "")
	var body map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["budget"] != storage.DefaultBudget {
		t.Errorf("default budget = %v, want %v", body["budget"], storage.DefaultBudget)
	}

	rec = doRequest(t, srv, http.MethodPut, "/api/budget", `{"budget":2500}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPut, "/api/budget", `{"budget":-10}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative budget status = %d, want 400", rec.Code)
	}
}

func TestThemeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPut, "/api/theme", `{"theme":"dark"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/theme", "")
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["theme"] != "dark" {
		t.Errorf("theme = %q, want dark", body["theme"])
	}

	rec = doRequest(t, srv, http.MethodPut, "/api/theme", `{"theme":"sepia"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid theme status = %d, want 400", rec.Code)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	createTransaction(t, srv, `{"type":"expense","description":"Dinner","category":"🍔 Food & Dining","amount":30,"date":"2025-03-15"}`)

	rec := doRequest(t, srv, http.MethodGet, "/api/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	backup := rec.Body.String()

	// Re-importing the same backup adds nothing in merge mode.
	rec = doRequest(t, srv, http.MethodPost, "/api/import", backup)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result["imported"] != 0 || result["total"] != 1 {
		t.Errorf("merge import = %+v, want 0 imported, 1 total", result)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/import", `{"transactions":{"a":1}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed import status = %d, want 400", rec.Code)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	createTransaction(t, srv, `{"type":"income","description":"Salary","category":"💼 Salary","amount":2000,"date":"2025-03-01"}`)
	createTransaction(t, srv, `{"type":"expense","description":"Rent","category":"🏠 Housing","amount":800,"date":"2025-03-02"}`)

	rec := doRequest(t, srv, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rec.Code)
	}

	var totals struct {
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
		Net     float64 `json:"net"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
		t.Fatal(err)
	}
	if totals.Income != 2000 || totals.Expense != 800 || totals.Net != 1200 {
		t.Errorf("totals = %+v", totals)
	}
}

func TestSyncEndpoints(t *testing.T) {
	srv, mem := newTestServer(t)
	createTransaction(t, srv, `{"type":"expense","description":"Dinner","category":"🍔 Food & Dining","amount":30,"date":"2025-03-15"}`)

	rec := doRequest(t, srv, http.MethodGet, "/api/sync/status", "")
	var status services.SyncStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status.Connected {
		t.Fatal("fresh server reports connected")
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/sync/connect", `{"token":"tok-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("connect status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if !status.Connected || status.DocumentID == "" {
		t.Fatalf("status after connect = %+v", status)
	}

	doc, err := mem.Fetch(context.Background(), status.DocumentID)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(doc.Transactions) != 1 {
		t.Errorf("remote seeded with %d transactions, want 1", len(doc.Transactions))
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/sync/connect", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("connect without token status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/sync/disconnect", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("disconnect status = %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodPost, "/api/sync/now", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("sync now while disconnected status = %d, want 409", rec.Code)
	}
}

func TestBootstrapConnectRedirectsToCleanURL(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/?token=tok-1", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want / without credentials", loc)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/sync/status", "")
	var status services.SyncStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if !status.Connected {
		t.Error("bootstrap did not connect sync")
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	if rec := doRequest(t, srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}
	if rec := doRequest(t, srv, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Errorf("readyz = %d", rec.Code)
	}
	if rec := doRequest(t, srv, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path = %d, want 404", rec.Code)
	}
}
