package memstore

import (
	"context"
	"sort"
	"sync"
)

// Store 是一个线程安全的内存去重存储，仅用于开发/轻量场景。
type Store struct {
	mu sync.RWMutex
	m  map[string]map[string]string // formID -> instanceID -> dir
}

// New 创建内存存储。
func New() *Store { return &Store{m: map[string]map[string]string{}} }

func (s *Store) HasRecordedInstance(ctx context.Context, formID, instanceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[formID][instanceID]
	return ok, nil
}

func (s *Store) PutRecordedInstanceDirectory(ctx context.Context, formID, instanceID, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m[formID] == nil {
		s.m[formID] = map[string]string{}
	}
	s.m[formID][instanceID] = dir
	return nil
}

func (s *Store) ListRecordedInstances(ctx context.Context, formID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.m[formID]))
	for id := range s.m[formID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
