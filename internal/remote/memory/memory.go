// Package memory implements an in-process remote store used in tests
// and when running without a GitHub token.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/remote"
)

type Store struct {
	mu     sync.Mutex
	nextID int
	docs   map[string]remote.Document
}

func New() *Store {
	return &Store{docs: make(map[string]remote.Document)}
}

func (s *Store) Create(_ context.Context, doc remote.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := fmt.Sprintf("mem-%d", s.nextID)
	s.docs[id] = cloneDoc(doc)
	return id, nil
}

func (s *Store) Update(_ context.Context, id string, doc remote.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return remote.ErrNotFound
	}
	s.docs[id] = cloneDoc(doc)
	return nil
}

func (s *Store) Fetch(_ context.Context, id string) (remote.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return remote.Document{}, remote.ErrNotFound
	}
	return cloneDoc(doc), nil
}

// Seed installs a document under a fixed id, for tests exercising the
// fetch-on-startup path.
func (s *Store) Seed(id string, doc remote.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = cloneDoc(doc)
}

func cloneDoc(doc remote.Document) remote.Document {
	out := doc
	out.Transactions = append([]core.Transaction(nil), doc.Transactions...)
	return out
}
