package storage

import (
	"context"
	"sort"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	values map[string][]byte

	// FailWrites makes Set/Delete report an error, for exercising the
	// engine's log-and-continue path.
	FailWrites error
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

func (s *MemStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (s *MemStore) Set(ctx context.Context, key string, value []byte) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[key] = cp
	return nil
}

func (s *MemStore) Delete(ctx context.Context, key string) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.values, key)
	return nil
}

func (s *MemStore) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
