package infrastructure

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/streamdj/streamdj/internal/modules/songrequest/application/ports"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

// FileHistoryStore persists play history as an append-only JSON-lines file.
// The full log is kept in memory; Append writes through to disk.
type FileHistoryStore struct {
	mu      sync.Mutex
	path    string
	entries []domain.HistoryEntry
}

var _ ports.HistoryStore = (*FileHistoryStore)(nil)

// NewFileHistoryStore loads any existing history from path. A missing or
// partially corrupt file is not fatal: readable lines are kept, the rest is
// logged and skipped.
func NewFileHistoryStore(path string) (*FileHistoryStore, error) {
	store := &FileHistoryStore{path: path}

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to open history file, starting empty", "path", path, "error", err)
		}
		return store, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	skipped := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry domain.HistoryEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			skipped++
			continue
		}
		store.entries = append(store.entries, entry)
	}
	if err := scanner.Err(); err != nil {
		slog.Warn("failed to read history file", "path", path, "error", err)
	}
	if skipped > 0 {
		slog.Warn("skipped unreadable history lines", "path", path, "count", skipped)
	}

	return store, nil
}

// Append records the entry in memory and appends it to the file.
func (s *FileHistoryStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}

	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a snapshot of the history in record order.
func (s *FileHistoryStore) Entries() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.HistoryEntry, len(s.entries))
	copy(result, s.entries)
	return result
}
