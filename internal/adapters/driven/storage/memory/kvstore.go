package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
)

// Ensure stores implement their interfaces.
var (
	_ driven.KeyValueStore      = (*KeyValueStore)(nil)
	_ driven.ReportHistoryStore = (*ReportHistoryStore)(nil)
)

// KeyValueStore is an in-memory implementation of driven.KeyValueStore.
type KeyValueStore struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// NewKeyValueStore creates a new in-memory key-value store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{
		values: make(map[string]json.RawMessage),
	}
}

// Get retrieves a value by key.
func (s *KeyValueStore) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append(json.RawMessage(nil), val...), true, nil
}

// Set stores a value.
func (s *KeyValueStore) Set(_ context.Context, key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append(json.RawMessage(nil), value...)
	return nil
}

// Remove deletes a key.
func (s *KeyValueStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *KeyValueStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReportHistoryStore is an in-memory implementation of driven.ReportHistoryStore.
type ReportHistoryStore struct {
	mu      sync.Mutex
	records []domain.ReportRecord
}

// NewReportHistoryStore creates a new in-memory history store.
func NewReportHistoryStore() *ReportHistoryStore {
	return &ReportHistoryStore{}
}

// Record appends a history entry.
func (s *ReportHistoryStore) Record(_ context.Context, rec domain.ReportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// List returns the most recent entries first.
func (s *ReportHistoryStore) List(_ context.Context, limit int) ([]domain.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.ReportRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		result = append(result, s.records[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
