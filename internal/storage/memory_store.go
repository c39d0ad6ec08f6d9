package storage

import (
	"sync"
	"time"
)

// memoryStore is a process-local Store for callers that want caching without persistence.
type memoryStore struct {
	mu          sync.RWMutex
	entries     map[string]memoryEntry
	responseTTL time.Duration
}

type memoryEntry struct {
	payload []byte
	expiry  time.Time
}

func newMemoryStore(opts Options) *memoryStore {
	return &memoryStore{
		entries:     make(map[string]memoryEntry),
		responseTTL: opts.ResponseTTL,
	}
}

func (m *memoryStore) Close() error { return nil }

// GetResponse returns the cached payload for key, dropping it if expired.
func (m *memoryStore) GetResponse(key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiry.After(time.Now()) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// PutResponse stores the payload under key with the configured TTL.
func (m *memoryStore) PutResponse(key string, payload []byte) error {
	buf := make([]byte, len(payload))
	copy(buf, payload)

	m.mu.Lock()
	m.entries[key] = memoryEntry{payload: buf, expiry: time.Now().Add(m.responseTTL)}
	m.mu.Unlock()
	return nil
}
