// Package store holds the canonical in-memory transaction list. It is
// the single source of truth for the running process; the persistence
// and sync layers observe it through the post-mutation hook pipeline.
package store

import (
	"sync"
	"time"

	"fintrack/internal/core"
)

// Hook runs after a successful mutation with a snapshot of the new list.
// Hooks run synchronously in registration order inside the mutation's
// critical section and must not call back into the store.
type Hook func(snapshot []core.Transaction)

type Store struct {
	mu     sync.Mutex
	list   []core.Transaction
	lastID int64
	hooks  []Hook

	now func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock injects a clock for tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// OnMutate registers a post-mutation hook. Registration order defines
// run order: persist first, then sync scheduling, then view refresh.
func (s *Store) OnMutate(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Add assigns a fresh id and prepends the record, newest first. Ids are
// derived from the creation timestamp in milliseconds; two additions in
// the same millisecond are kept unique by bumping past the last issued
// id, so the id stays a monotonic counter seeded by the clock.
func (s *Store) Add(t core.Transaction) core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	t.ID = id

	s.list = append([]core.Transaction{t}, s.list...)
	s.runHooks()
	return t
}

// Remove deletes the record with the given id. An absent id is a silent
// no-op: nothing changes and no hooks run.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.list {
		if t.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			s.runHooks()
			return true
		}
	}
	return false
}

// ToggleSplit flips the shared flag in place. An absent id is a no-op.
func (s *Store) ToggleSplit(id int64) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i].IsSplitwise = !s.list[i].IsSplitwise
			t := s.list[i]
			s.runHooks()
			return t, true
		}
	}
	return core.Transaction{}, false
}

// ReplaceAll discards the current list unconditionally.
func (s *Store) ReplaceAll(list []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(list)
	s.runHooks()
}

// Seed loads the list without running hooks. Used once at startup to
// install the persisted copy without writing it straight back.
func (s *Store) Seed(list []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(list)
}

// MergeImport appends only incoming records whose id is not already
// present; a colliding import is fully discarded and never updates the
// existing record. Returns the number of records added.
func (s *Store) MergeImport(incoming []core.Transaction) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[int64]struct{}, len(s.list))
	for _, t := range s.list {
		existing[t.ID] = struct{}{}
	}

	added := 0
	for _, t := range incoming {
		if _, ok := existing[t.ID]; ok {
			continue
		}
		existing[t.ID] = struct{}{}
		s.list = append(s.list, t)
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
		added++
	}

	if added > 0 {
		s.runHooks()
	}
	return added
}

// Clear empties the store and returns how many records were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.list)
	if n == 0 {
		return 0
	}
	s.list = nil
	s.runHooks()
	return n
}

// Transactions returns a copy of the current list in display order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, len(s.list))
	copy(out, s.list)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

func (s *Store) replace(list []core.Transaction) {
	s.list = make([]core.Transaction, len(list))
	copy(s.list, list)
	for _, t := range list {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
}

// runHooks must be called with the lock held.
func (s *Store) runHooks() {
	if len(s.hooks) == 0 {
		return
	}
	snapshot := make([]core.Transaction, len(s.list))
	copy(snapshot, s.list)
	for _, h := range s.hooks {
		h(snapshot)
	}
}
