package presentation

import (
	"context"
	"testing"
	"time"

	"github.com/streamdj/streamdj/internal/bot"
	"github.com/streamdj/streamdj/internal/modules/songrequest/application/ports"
	"github.com/streamdj/streamdj/internal/modules/songrequest/application/usecases"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

func testTrack(title string) domain.Track {
	return domain.Track{
		Title:    title,
		Artist:   "Test Artist",
		URI:      "spotify:track:" + title,
		Duration: 3 * time.Minute,
	}
}

// fakeBackend is a minimal MusicBackend for handler tests.
type fakeBackend struct {
	searchTrack *domain.Track
	state       *ports.PlaybackState
}

var _ ports.MusicBackend = (*fakeBackend)(nil)

func (b *fakeBackend) Search(ctx context.Context, query string) (*domain.Track, error) {
	return b.searchTrack, nil
}

func (b *fakeBackend) ResolveLink(ctx context.Context, link string) (*domain.Track, error) {
	return b.searchTrack, nil
}

func (b *fakeBackend) CurrentPlaybackState(ctx context.Context) (*ports.PlaybackState, error) {
	if b.state == nil {
		return &ports.PlaybackState{}, nil
	}
	return b.state, nil
}

func (b *fakeBackend) StartPlayback(ctx context.Context, uri string) error { return nil }
func (b *fakeBackend) EnqueueNext(ctx context.Context, uri string) error   { return nil }
func (b *fakeBackend) SkipCurrent(ctx context.Context) error               { return nil }

func (b *fakeBackend) RandomPlaylistTrack(ctx context.Context, playlistID string) (*domain.Track, error) {
	return nil, nil
}

// fakeHistoryStore is an in-memory HistoryStore for handler tests.
type fakeHistoryStore struct {
	entries []domain.HistoryEntry
}

var _ ports.HistoryStore = (*fakeHistoryStore)(nil)

func (s *fakeHistoryStore) Append(entry domain.HistoryEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeHistoryStore) Entries() []domain.HistoryEntry {
	return s.entries
}

// newTestHandlers builds Handlers over a running orchestrator with a tick
// interval long enough that the loop never fires during a test.
func newTestHandlers(t *testing.T, backend *fakeBackend) (*Handlers, *usecases.Orchestrator) {
	t.Helper()

	queue := domain.NewQueue(domain.DefaultRules(), true)
	history := usecases.NewHistoryService(&fakeHistoryStore{})

	cfg := usecases.DefaultLoopConfig()
	cfg.TickInterval = time.Hour

	orch := usecases.NewOrchestrator(queue, backend, history, nil, cfg)
	if err := orch.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(orch.Stop)

	return NewHandlers(orch, history), orch
}

func chatMessage(command, args string) bot.ChatMessage {
	return bot.ChatMessage{
		Channel:     "streamer",
		Username:    "alice",
		DisplayName: "Alice",
		Command:     command,
		Args:        args,
	}
}
