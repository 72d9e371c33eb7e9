package prefs

import "sync"

// Preferences 通用键值偏好接口，用于保存按表单维度的续传游标等少量状态。
// 宿主可用任意持久化实现替换（文件、数据库等）。
type Preferences interface {
	Put(key, value string)
	Get(key string) (string, bool)
	Remove(key string)
	HasKey(key string) bool
}

// MemPrefs 线程安全的内存实现，适合测试与短生命周期进程。
type MemPrefs struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemPrefs 构造内存偏好存储。
func NewMemPrefs() *MemPrefs { return &MemPrefs{m: map[string]string{}} }

func (p *MemPrefs) Put(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[key] = value
}

func (p *MemPrefs) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.m[key]
	return v, ok
}

func (p *MemPrefs) Remove(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, key)
}

func (p *MemPrefs) HasKey(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.m[key]
	return ok
}
