package storage

import "sync"

// MemoryStore is a mutex-guarded in-memory KVStore. It is the session-scoped
// store: its contents live exactly as long as the owning process.
type MemoryStore struct {
	mutex sync.Mutex
	data  map[string]string
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

// Get retrieves a value from the map
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	value, ok := m.data[key]
	return value, ok
}

// Set stores a value in the map
func (m *MemoryStore) Set(key string, value string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data[key] = value
}
