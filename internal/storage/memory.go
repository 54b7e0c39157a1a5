package storage

import (
	"context"
	"fmt"
	"sync"

	"skillswap/internal/models"
)

// MemoryObject is a blob held by MemoryStore.
type MemoryObject struct {
	Data        []byte
	ContentType string
}

// MemoryStore is an in-memory ObjectStore used in tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	buckets map[string]map[string]MemoryObject
}

// NewMemoryStore returns an empty MemoryStore issuing URLs under baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "https://storage.local"
	}
	return &MemoryStore{
		baseURL: baseURL,
		buckets: make(map[string]map[string]MemoryObject),
	}
}

func (m *MemoryStore) Put(_ context.Context, bucket, key string, data []byte, contentType string, overwrite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.buckets[bucket]
	if !ok {
		objects = make(map[string]MemoryObject)
		m.buckets[bucket] = objects
	}

	if _, exists := objects[key]; exists && !overwrite {
		return models.NewConflictError(fmt.Sprintf("object %q already exists in bucket %q", key, bucket))
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	objects[key] = MemoryObject{Data: buf, ContentType: contentType}
	return nil
}

func (m *MemoryStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", m.baseURL, bucket, key)
}

// Get returns the stored object and whether it exists.
func (m *MemoryStore) Get(bucket, key string) (MemoryObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.buckets[bucket][key]
	return obj, ok
}

// Len returns the number of objects held in bucket.
func (m *MemoryStore) Len(bucket string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.buckets[bucket])
}
