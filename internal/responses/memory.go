// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package responses

import (
	"context"
	"sync"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

// MemoryStore keeps responses in process memory. Its contents live as long
// as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[Key]types.ResponseEvent
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[Key]types.ResponseEvent)}
}

func (m *MemoryStore) Get(_ context.Context, key Key) (types.ResponseEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ev, ok := m.events[key]
	if !ok {
		return types.ResponseEvent{}, ErrNotFound
	}
	return ev, nil
}

func (m *MemoryStore) Set(_ context.Context, key Key, ev types.ResponseEvent) (types.ResponseEvent, error) {
	ev, err := prepare(key, ev)
	if err != nil {
		return types.ResponseEvent{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.events[key]; ok && !supersedes(stored, ev) {
		return stored, ErrStale
	}
	m.events[key] = ev
	return ev, nil
}

func (m *MemoryStore) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[key]; !ok {
		return ErrNotFound
	}
	delete(m.events, key)
	return nil
}

func (m *MemoryStore) List(_ context.Context, userID string) ([]types.ResponseEvent, error) {
	m.mu.RLock()
	out := []types.ResponseEvent{}
	for k, ev := range m.events {
		if k.UserID == userID {
			out = append(out, ev)
		}
	}
	m.mu.RUnlock()

	sortEvents(out)
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
