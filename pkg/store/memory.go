package store

import (
	"context"
	"sync"
)

// Memory is a map-backed store guarded by a read-write mutex.
type Memory[V any] struct {
	items  map[string]V
	mu     sync.RWMutex
	closed bool
}

// NewMemory creates an empty in-memory store.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{items: make(map[string]V)}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero V
	if m.closed {
		return zero, ErrClosed
	}
	v, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	return v, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.items[key] = value
	return nil
}

func (m *Memory[V]) Add(_ context.Context, key string, value V) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrClosed
	}
	if _, ok := m.items[key]; ok {
		return false, nil
	}
	m.items[key] = value
	return true, nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Close drops all entries. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	return nil
}

var _ Store[any] = (*Memory[any])(nil)
