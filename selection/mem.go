package selection

import (
	"sort"
	"sync"
)

// MemStore keeps selections for the lifetime of the process.
type MemStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) Get(key string) (Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrStoreClosed
	}
	return decode(key, m.data[key])
}

func (m *MemStore) Put(key string, s Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	if s.Len() == 0 {
		delete(m.data, key)
		return nil
	}
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.data[key] = data
	return nil
}

func (m *MemStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrStoreClosed
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
