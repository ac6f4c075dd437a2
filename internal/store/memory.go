package store

import (
	"context"
	"sync"
)

type memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryStore returns a store held in process memory, optionally seeded
// with raw contents per name.
func NewMemoryStore(objects map[string][]byte) Store {
	if objects == nil {
		objects = make(map[string][]byte)
	}
	return &memory{objects: objects}
}

func (s *memory) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[name]
	if !ok {
		return nil, ErrNoObject
	}
	return append([]byte(nil), data...), nil
}

func (s *memory) Put(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	s.objects[name] = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}
