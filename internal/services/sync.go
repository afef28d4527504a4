package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/remote"
	"fintrack/internal/store"
)

// RemoteFactory builds a remote store for the given credential. It is
// injected so tests can substitute an in-process mirror.
type RemoteFactory func(ctx context.Context, credential string) (remote.Store, error)

// SyncRepository is the subset of storage used to persist credentials.
type SyncRepository interface {
	SaveSyncConfig(ctx context.Context, cfg core.SyncConfig) error
	ClearSyncConfig(ctx context.Context) error
}

// SyncStatus is the connection state reported to clients.
type SyncStatus struct {
	Connected  bool   `json:"connected"`
	DocumentID string `json:"documentId,omitempty"`
	LastSync   string `json:"lastSync,omitempty"`
}

// SyncService mirrors the transaction list into a remote document.
// Mutations schedule a debounced push; startup pulls the remote copy
// and lets it replace local state. Background failures are logged and
// retried on the next mutation, never surfaced to the caller.
type SyncService struct {
	mu       sync.Mutex
	cfg      core.SyncConfig
	lastSync string

	store     *store.Store
	repo      SyncRepository
	factory   RemoteFactory
	debouncer *Debouncer
	logger    *log.Logger
}

func NewSyncService(st *store.Store, repo SyncRepository, factory RemoteFactory, debounce time.Duration, logger *log.Logger) *SyncService {
	s := &SyncService{
		store:   st,
		repo:    repo,
		factory: factory,
		logger:  logger.WithComponent(log.ComponentSync),
	}
	s.debouncer = NewDebouncer(debounce, func() {
		if err := s.PushNow(context.Background()); err != nil {
			s.logger.Error("Background push failed", log.FieldError, err.Error())
		}
	})
	return s
}

// Configure installs previously persisted credentials without touching
// the remote. Used once at startup.
func (s *SyncService) Configure(cfg core.SyncConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *SyncService) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Enabled()
}

// SchedulePush arms the debounced push. A no-op when disconnected.
func (s *SyncService) SchedulePush() {
	if !s.Enabled() {
		return
	}
	s.debouncer.Trigger()
}

// PushNow writes the current list to the remote document immediately.
func (s *SyncService) PushNow(ctx context.Context) error {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	if !cfg.Enabled() {
		return nil
	}

	rs, err := s.factory(ctx, cfg.Credential)
	if err != nil {
		return fmt.Errorf("build remote store: %w", err)
	}

	doc := remote.Document{
		LastSync:     time.Now().UTC().Format(time.RFC3339),
		Transactions: s.store.Transactions(),
	}
	if err := rs.Update(ctx, cfg.DocumentID, doc); err != nil {
		return fmt.Errorf("push to remote: %w", err)
	}

	s.mu.Lock()
	s.lastSync = doc.LastSync
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Pushed to remote",
		log.FieldOperation, log.OpPush,
		log.FieldDocumentID, cfg.DocumentID,
		log.FieldCount, len(doc.Transactions))
	return nil
}

// PullOnStartup fetches the remote document and replaces local state
// with it. The remote copy always wins at startup; failures are logged
// and local data stays as-is.
func (s *SyncService) PullOnStartup(ctx context.Context) {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	if !cfg.Enabled() {
		return
	}

	rs, err := s.factory(ctx, cfg.Credential)
	if err != nil {
		s.logger.ErrorContext(ctx, "Startup pull failed", log.FieldError, err.Error())
		return
	}

	doc, err := rs.Fetch(ctx, cfg.DocumentID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Startup pull failed",
			log.FieldOperation, log.OpPull,
			log.FieldDocumentID, cfg.DocumentID,
			log.FieldError, err.Error())
		return
	}

	s.store.ReplaceAll(doc.Transactions)

	s.mu.Lock()
	s.lastSync = doc.LastSync
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Pulled from remote",
		log.FieldOperation, log.OpPull,
		log.FieldDocumentID, cfg.DocumentID,
		log.FieldCount, len(doc.Transactions))
}

// Connect establishes the remote mirror. With a document id the remote
// copy is fetched and replaces local state; without one a fresh
// document is created seeded with the current list. Credentials are
// persisted only after the remote call succeeds.
func (s *SyncService) Connect(ctx context.Context, credential, documentID string) (SyncStatus, error) {
	rs, err := s.factory(ctx, credential)
	if err != nil {
		return SyncStatus{}, fmt.Errorf("build remote store: %w", err)
	}

	s.mu.Lock()
	stored := s.cfg.DocumentID
	s.mu.Unlock()

	var lastSync string
	switch {
	case documentID != "":
		// Joining an existing document adopts its contents.
		doc, err := rs.Fetch(ctx, documentID)
		if err != nil {
			return SyncStatus{}, fmt.Errorf("fetch remote document: %w", err)
		}
		s.store.ReplaceAll(doc.Transactions)
		lastSync = doc.LastSync
	case stored != "":
		// Reconnecting with a fresh credential pushes to the known document.
		documentID = stored
		doc := remote.Document{
			LastSync:     time.Now().UTC().Format(time.RFC3339),
			Transactions: s.store.Transactions(),
		}
		if err := rs.Update(ctx, documentID, doc); err != nil {
			return SyncStatus{}, fmt.Errorf("push to remote: %w", err)
		}
		lastSync = doc.LastSync
	default:
		doc := remote.Document{
			LastSync:     time.Now().UTC().Format(time.RFC3339),
			Transactions: s.store.Transactions(),
		}
		documentID, err = rs.Create(ctx, doc)
		if err != nil {
			return SyncStatus{}, fmt.Errorf("create remote document: %w", err)
		}
		lastSync = doc.LastSync
	}

	cfg := core.SyncConfig{Credential: credential, DocumentID: documentID}
	if err := s.repo.SaveSyncConfig(ctx, cfg); err != nil {
		return SyncStatus{}, fmt.Errorf("persist sync config: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.lastSync = lastSync
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Sync connected",
		log.FieldOperation, log.OpConnect,
		log.FieldDocumentID, documentID)
	return s.Status(), nil
}

// Disconnect forgets the credentials. The remote document is left in
// place; local data is untouched.
func (s *SyncService) Disconnect(ctx context.Context) error {
	if err := s.repo.ClearSyncConfig(ctx); err != nil {
		return fmt.Errorf("clear sync config: %w", err)
	}

	s.debouncer.Stop()

	s.mu.Lock()
	s.cfg = core.SyncConfig{}
	s.lastSync = ""
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Sync disconnected")
	return nil
}

func (s *SyncService) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SyncStatus{
		Connected:  s.cfg.Enabled(),
		DocumentID: s.cfg.DocumentID,
		LastSync:   s.lastSync,
	}
}

// Stop cancels any pending debounced push on shutdown.
func (s *SyncService) Stop() {
	s.debouncer.Stop()
}
