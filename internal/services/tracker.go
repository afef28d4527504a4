package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

// Repository is the persistence surface the tracker relies on.
type Repository interface {
	SyncRepository
	SaveTransactions(ctx context.Context, list []core.Transaction) error
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveBudget(ctx context.Context, budget float64) error
	LoadBudget(ctx context.Context) (float64, error)
	SaveTheme(ctx context.Context, theme core.Theme) error
	LoadTheme(ctx context.Context) (core.Theme, error)
	LoadSyncConfig(ctx context.Context) (core.SyncConfig, error)
}

// TransactionInput is the user-supplied part of a new transaction.
type TransactionInput struct {
	Type        core.TransactionType `json:"type"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Amount      float64              `json:"amount"`
	Date        string               `json:"date"`
}

// Tracker owns the application state: the in-memory transaction list,
// the monthly budget and theme preferences, and the sync service. Every
// mutation flows through here, so persistence and the debounced push
// are wired once as store hooks instead of being repeated per caller.
type Tracker struct {
	store  *store.Store
	repo   Repository
	sync   *SyncService
	logger *log.Logger
	now    func() time.Time

	mu     sync.Mutex
	budget float64
	theme  core.Theme
}

func NewTracker(st *store.Store, repo Repository, syncSvc *SyncService, logger *log.Logger) *Tracker {
	t := &Tracker{
		store:  st,
		repo:   repo,
		sync:   syncSvc,
		logger: logger.WithComponent(log.ComponentTracker),
		now:    time.Now,
		budget: 0,
		theme:  core.ThemeLight,
	}

	// Hook order matters: the local copy is durable before a push is
	// even scheduled.
	st.OnMutate(func(snapshot []core.Transaction) {
		if err := repo.SaveTransactions(context.Background(), snapshot); err != nil {
			t.logger.Error("Persist transactions failed", log.FieldError, err.Error())
		}
	})
	st.OnMutate(func([]core.Transaction) {
		syncSvc.SchedulePush()
	})

	return t
}

// Startup loads persisted state into memory and, when sync is
// configured, pulls the remote copy which replaces whatever was loaded
// locally.
func (t *Tracker) Startup(ctx context.Context) error {
	if err := t.StartupLocal(ctx); err != nil {
		return err
	}
	t.sync.PullOnStartup(ctx)
	return nil
}

// StartupLocal loads persisted state and sync credentials without
// contacting the remote.
func (t *Tracker) StartupLocal(ctx context.Context) error {
	list, err := t.repo.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	t.store.Seed(list)

	budget, err := t.repo.LoadBudget(ctx)
	if err != nil {
		return fmt.Errorf("load budget: %w", err)
	}
	theme, err := t.repo.LoadTheme(ctx)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	cfg, err := t.repo.LoadSyncConfig(ctx)
	if err != nil {
		return fmt.Errorf("load sync config: %w", err)
	}

	t.mu.Lock()
	t.budget = budget
	t.theme = theme
	t.mu.Unlock()

	t.sync.Configure(cfg)

	t.logger.InfoContext(ctx, "State loaded",
		log.FieldOperation, log.OpStartup,
		log.FieldCount, t.store.Len(),
		"sync_enabled", cfg.Enabled())
	return nil
}

// Add validates and records a new transaction.
func (t *Tracker) Add(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	tx := core.Transaction{
		Type:        in.Type,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        in.Date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	tx = t.store.Add(tx)
	t.logger.InfoContext(ctx, "Transaction added",
		log.FieldOperation, log.OpCreate,
		log.FieldTxID, tx.ID,
		log.FieldTxType, string(tx.Type),
		log.FieldAmount, tx.Amount)
	return tx, nil
}

// Delete removes a transaction. Deleting an unknown id is a no-op and
// reports false.
func (t *Tracker) Delete(ctx context.Context, id int64) bool {
	removed := t.store.Remove(id)
	if removed {
		t.logger.InfoContext(ctx, "Transaction deleted",
			log.FieldOperation, log.OpDelete,
			log.FieldTxID, id)
	}
	return removed
}

// ToggleSplit flips the shared flag on a transaction.
func (t *Tracker) ToggleSplit(ctx context.Context, id int64) (core.Transaction, bool) {
	tx, ok := t.store.ToggleSplit(id)
	if ok {
		t.logger.InfoContext(ctx, "Split flag toggled",
			log.FieldOperation, log.OpToggle,
			log.FieldTxID, id,
			"is_splitwise", tx.IsSplitwise)
	}
	return tx, ok
}

// ClearAll wipes the transaction list and reports how many records were
// removed.
func (t *Tracker) ClearAll(ctx context.Context) int {
	n := t.store.Clear()
	if n > 0 {
		t.logger.InfoContext(ctx, "All transactions cleared", log.FieldCount, n)
	}
	return n
}

// List applies the filter to the current list, newest first.
func (t *Tracker) List(f core.Filter) []core.Transaction {
	return f.Apply(t.store.Transactions(), t.now())
}

// All returns the unfiltered list, newest first.
func (t *Tracker) All() []core.Transaction {
	return t.store.Transactions()
}

// Export snapshots the full list into a portable backup document.
func (t *Tracker) Export() core.ExportDocument {
	return core.NewExportDocument(t.store.Transactions(), t.now())
}

// Import ingests a backup document. In replace mode the backup becomes
// the whole list; in merge mode records whose id already exists are
// skipped, so the existing copy wins. Returns how many records were
// brought in.
func (t *Tracker) Import(ctx context.Context, data []byte, replace bool) (int, error) {
	doc, err := core.ParseExportDocument(data)
	if err != nil {
		return 0, err
	}

	var n int
	if replace {
		t.store.ReplaceAll(doc.Transactions)
		n = len(doc.Transactions)
	} else {
		n = t.store.MergeImport(doc.Transactions)
	}

	t.logger.InfoContext(ctx, "Backup imported",
		log.FieldOperation, log.OpImport,
		log.FieldCount, n,
		"replace", replace)
	return n, nil
}

// SetBudget persists and applies a new monthly budget.
func (t *Tracker) SetBudget(ctx context.Context, budget float64) error {
	if budget <= 0 {
		return core.ErrInvalidAmount
	}
	if err := t.repo.SaveBudget(ctx, budget); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}

	t.mu.Lock()
	t.budget = budget
	t.mu.Unlock()
	return nil
}

func (t *Tracker) Budget() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.budget
}

// SetTheme persists and applies the display theme.
func (t *Tracker) SetTheme(ctx context.Context, raw string) (core.Theme, error) {
	theme, err := core.ParseTheme(raw)
	if err != nil {
		return "", err
	}
	if err := t.repo.SaveTheme(ctx, theme); err != nil {
		return "", fmt.Errorf("save theme: %w", err)
	}

	t.mu.Lock()
	t.theme = theme
	t.mu.Unlock()
	return theme, nil
}

func (t *Tracker) Theme() core.Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.theme
}

// Sync exposes the sync service for the transport layer.
func (t *Tracker) Sync() *SyncService {
	return t.sync
}

// Now reports the tracker's clock, injected in tests.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// SetClock overrides the clock, for tests.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}
