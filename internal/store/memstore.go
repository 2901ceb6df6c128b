package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
// It also doubles as a fault injector for tests: set Unavailable to make
// every operation report storage loss.
type MemStore struct {
	mu   sync.RWMutex
	runs map[string]*RunRecord

	// Unavailable forces every operation to fail with ErrUnavailable.
	Unavailable bool
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{runs: make(map[string]*RunRecord)}
}

// Init is a no-op for the in-memory store.
func (m *MemStore) Init(_ context.Context) error {
	return m.check()
}

// Close is a no-op.
func (m *MemStore) Close() error { return nil }

// SaveRun stores the record keyed by run identifier.
func (m *MemStore) SaveRun(_ context.Context, rec *RunRecord) error {
	if err := m.check(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[rec.ID] = rec
	return nil
}

// LoadRun returns the stored record or ErrNotFound.
func (m *MemStore) LoadRun(_ context.Context, id string) (*RunRecord, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("store: run %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// ListRuns returns summaries newest first.
func (m *MemStore) ListRuns(_ context.Context) ([]RunSummary, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RunSummary, 0, len(m.runs))
	for _, rec := range m.runs {
		out = append(out, rec.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (m *MemStore) check() error {
	if m.Unavailable {
		return fmt.Errorf("store: memory backend: %w", ErrUnavailable)
	}
	return nil
}
