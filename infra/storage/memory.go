package storage

import "sync"

// Memory is a process-lifetime store. It stands in for session-scoped
// storage and backs tests.
type Memory struct {
	mu    sync.Mutex
	data  map[string]string
	used  int
	quota int
}

// NewMemory creates an empty in-memory store with the given byte quota.
func NewMemory(quota int) *Memory {
	return &Memory{data: make(map[string]string), quota: quota}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldSize := 0
	if old, ok := m.data[key]; ok {
		oldSize = entrySize(key, old)
	}
	newSize := entrySize(key, value)
	if err := checkQuota(m.quota, m.used, oldSize, newSize, key); err != nil {
		return err
	}
	m.data[key] = value
	m.used += newSize - oldSize
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.data[key]; ok {
		m.used -= entrySize(key, old)
		delete(m.data, key)
	}
	return nil
}
