// Package mocks offers KVStore fakes for tests.
package mocks

// KVStoreMock delegates to caller-supplied hooks.
type KVStoreMock struct {
	GetCall func(key string) (string, bool)
	SetCall func(key string, value string)
}

// Get mocked implementation
func (m *KVStoreMock) Get(key string) (string, bool) {
	if m.GetCall == nil {
		return "", false
	}
	return m.GetCall(key)
}

// Set mocked implementation
func (m *KVStoreMock) Set(key string, value string) {
	if m.SetCall != nil {
		m.SetCall(key, value)
	}
}

// BrokenStore behaves like storage that throws on every access: reads always
// miss, writes go nowhere.
type BrokenStore struct{}

// Get always misses
func (b *BrokenStore) Get(key string) (string, bool) { return "", false }

// Set drops the value
func (b *BrokenStore) Set(key string, value string) {}
