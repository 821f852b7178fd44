package storage

import (
	"context"
	"sync"

	"nomadix/internal/models"
)

// MemoryStore keeps lists in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]models.LocationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]models.LocationRecord)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]models.LocationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.CloneRecords(m.entries[key]), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, records []models.LocationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = records
	return nil
}
