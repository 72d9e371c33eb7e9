package pull

import (
	"context"
	"sort"
	"sync"
)

// inMemoryStore 是包内置的线程安全内存存储，仅用于默认与测试场景。
// 设计：为了避免 import cycle，不依赖外部子包，实现最小的 Storage 接口。
type inMemoryStore struct {
	mu sync.RWMutex
	m  map[string]map[string]string // formID -> instanceID -> dir
}

// newDefaultMemStore 创建内置内存存储实现。
func newDefaultMemStore() Storage { return &inMemoryStore{m: map[string]map[string]string{}} }

func (s *inMemoryStore) HasRecordedInstance(ctx context.Context, formID, instanceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[formID][instanceID]
	return ok, nil
}

func (s *inMemoryStore) PutRecordedInstanceDirectory(ctx context.Context, formID, instanceID, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m[formID] == nil {
		s.m[formID] = map[string]string{}
	}
	s.m[formID][instanceID] = dir
	return nil
}

func (s *inMemoryStore) ListRecordedInstances(ctx context.Context, formID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.m[formID]))
	for id := range s.m[formID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
