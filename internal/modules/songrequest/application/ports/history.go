package ports

import "github.com/streamdj/streamdj/internal/modules/songrequest/domain"

// HistoryStore persists the append-only play log. Appends are serialized by
// the orchestrator's own goroutine; implementations need not lock.
type HistoryStore interface {
	// Append adds one entry to the end of the log.
	Append(entry domain.HistoryEntry) error

	// Entries returns the full log in append order.
	Entries() []domain.HistoryEntry
}
