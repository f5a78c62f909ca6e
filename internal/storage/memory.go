package storage

import "sync"

// MemoryStore keeps its document in memory. Used by tests and by callers that
// want a throwaway ledger.
type MemoryStore struct {
	name   string
	data   []byte
	exists bool
	mu     sync.Mutex
	dataMu sync.RWMutex
}

// NewMemoryStore returns an empty store for the document name.
func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{name: name}
}

// Name returns the document name.
func (ms *MemoryStore) Name() string {
	return ms.name
}

// Load returns a copy of the document, or ErrNotExist before the first Save.
func (ms *MemoryStore) Load() ([]byte, error) {
	ms.dataMu.RLock()
	defer ms.dataMu.RUnlock()

	if !ms.exists {
		return nil, ErrNotExist
	}
	return append([]byte(nil), ms.data...), nil
}

// Save replaces the document with a copy of data.
func (ms *MemoryStore) Save(data []byte) error {
	ms.dataMu.Lock()
	defer ms.dataMu.Unlock()

	ms.data = append([]byte(nil), data...)
	ms.exists = true
	return nil
}

// Lock serializes cycles within the process.
func (ms *MemoryStore) Lock() (func(), error) {
	ms.mu.Lock()
	return ms.mu.Unlock, nil
}
