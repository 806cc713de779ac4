package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kevinmichaelchen/repo-view/internal/view"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps session snapshots by ID.
type Store interface {
	Get(ctx context.Context, id string) (*view.Snapshot, error)
	Put(ctx context.Context, id string, s view.Snapshot) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	snap    view.Snapshot
	expires time.Time
}

// MemoryStore is a process-local Store. Entries expire after ttl.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*view.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.ttl > 0 && m.now().After(e.expires) {
		delete(m.entries, id)
		return nil, ErrSessionNotFound
	}
	snap := e.snap
	return &snap, nil
}

func (m *MemoryStore) Put(_ context.Context, id string, s view.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{snap: s, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.entries, id)
	return nil
}
