package infrastructure

import (
	"sync"

	"github.com/streamdj/streamdj/internal/modules/songrequest/application/ports"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

// MemoryHistoryStore is an in-memory HistoryStore. History does not survive
// a restart; useful for tests and ephemeral deployments.
type MemoryHistoryStore struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

var _ ports.HistoryStore = (*MemoryHistoryStore)(nil)

// NewMemoryHistoryStore creates an empty store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{}
}

// Append records the entry.
func (s *MemoryHistoryStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a snapshot of the history in record order.
func (s *MemoryHistoryStore) Entries() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.HistoryEntry, len(s.entries))
	copy(result, s.entries)
	return result
}
