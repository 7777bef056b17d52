package store

import (
	"context"
	"sync"

	"github.com/matzehuels/stepgraph/pkg/errors"
)

// MemoryStore keeps encoded snapshots in a map.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	data, ok := m.docs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NoData()
	}
	return decode(data)
}

func (m *MemoryStore) Set(ctx context.Context, s *Snapshot) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[s.ID] = data
	m.mu.Unlock()
	return nil
}

// SetRaw stores data under id without validation.
func (m *MemoryStore) SetRaw(id string, data []byte) {
	m.mu.Lock()
	m.docs[id] = data
	m.mu.Unlock()
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.docs, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*Snapshot, 0, len(m.docs))
	for _, data := range m.docs {
		if s, err := decode(data); err == nil {
			all = append(all, s)
		}
	}
	newestFirst(all)
	return all, nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	clear(m.docs)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
