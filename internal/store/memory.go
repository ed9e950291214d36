package store

import (
	"context"
	"sync"
)

type memorySpace struct {
	order  []string
	values map[string][]byte
}

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	spaces map[string]*memorySpace
}

func NewMemory() *Memory {
	return &Memory{spaces: make(map[string]*memorySpace)}
}

func (m *Memory) space(name string) *memorySpace {
	s, ok := m.spaces[name]
	if !ok {
		s = &memorySpace{values: make(map[string][]byte)}
		m.spaces[name] = s
	}
	return s
}

func (m *Memory) Get(_ context.Context, space, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.spaces[space]
	if !ok {
		return nil, ErrNotFound
	}
	value, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Put(_ context.Context, space, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.space(space)
	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, space, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.spaces[space]
	if !ok {
		return nil
	}
	if _, exists := s.values[key]; !exists {
		return nil
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) List(_ context.Context, space string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.spaces[space]
	if !ok {
		return [][]byte{}, nil
	}
	out := make([][]byte, 0, len(s.order))
	for _, key := range s.order {
		value := s.values[key]
		cp := make([]byte, len(value))
		copy(cp, value)
		out = append(out, cp)
	}
	return out, nil
}

var _ Store = (*Memory)(nil)
