package domain

import (
	"time"

	"github.com/google/uuid"
)

// AutopilotRequester tags history entries played from the fallback playlist.
const AutopilotRequester = "Autopilot"

// HistoryEntry is one record in the append-only play log.
type HistoryEntry struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Artist     string        `json:"artist"`
	URI        string        `json:"uri"`
	Duration   time.Duration `json:"duration"`
	Requester  string        `json:"requester"`
	Timestamp  time.Time     `json:"timestamp"`
	WasSkipped bool          `json:"was_skipped"`
}

// NewHistoryEntry creates a play-log record for the given track.
func NewHistoryEntry(track Track, requester string, wasSkipped bool) HistoryEntry {
	return HistoryEntry{
		ID:         uuid.NewString(),
		Title:      track.Title,
		Artist:     track.Artist,
		URI:        track.URI,
		Duration:   track.Duration,
		Requester:  requester,
		Timestamp:  time.Now().UTC(),
		WasSkipped: wasSkipped,
	}
}

// IsAutopilot returns true if the entry was played by the fallback autopilot.
func (e HistoryEntry) IsAutopilot() bool {
	return e.Requester == AutopilotRequester
}
