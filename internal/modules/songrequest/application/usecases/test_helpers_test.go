package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/streamdj/streamdj/internal/modules/songrequest/application/ports"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

func mockTrack(id string) *domain.Track {
	return &domain.Track{
		Title:    "Track " + id,
		Artist:   "Artist " + id,
		URI:      "spotify:track:" + id,
		Duration: 3 * time.Minute,
	}
}

func testQueue() *domain.Queue {
	return domain.NewQueue(domain.DefaultRules(), true)
}

// testLoopConfig keeps the reference ratios but with a tick long enough that
// the background loop never interferes with a test.
func testLoopConfig() LoopConfig {
	cfg := DefaultLoopConfig()
	cfg.TickInterval = time.Hour
	return cfg
}

type mockBackend struct {
	mu sync.Mutex

	searchTrack   *domain.Track
	searchErr     error
	resolveTrack  *domain.Track
	resolveErr    error
	state         *ports.PlaybackState
	stateErr      error
	startErr      error
	enqueueErr    error
	skipErr       error
	fallbackTrack *domain.Track
	fallbackErr   error

	searchBlocks bool // block Search until the context is cancelled

	started       []string
	enqueued      []string
	skips         int
	fallbackCalls int
}

var _ ports.MusicBackend = (*mockBackend)(nil)

func (m *mockBackend) Search(ctx context.Context, _ string) (*domain.Track, error) {
	if m.searchBlocks {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.searchTrack, m.searchErr
}

func (m *mockBackend) ResolveLink(_ context.Context, _ string) (*domain.Track, error) {
	return m.resolveTrack, m.resolveErr
}

func (m *mockBackend) CurrentPlaybackState(_ context.Context) (*ports.PlaybackState, error) {
	return m.state, m.stateErr
}

func (m *mockBackend) StartPlayback(_ context.Context, uri string) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.mu.Lock()
	m.started = append(m.started, uri)
	m.mu.Unlock()
	return nil
}

func (m *mockBackend) EnqueueNext(_ context.Context, uri string) error {
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	m.mu.Lock()
	m.enqueued = append(m.enqueued, uri)
	m.mu.Unlock()
	return nil
}

func (m *mockBackend) SkipCurrent(_ context.Context) error {
	m.mu.Lock()
	m.skips++
	m.mu.Unlock()
	return m.skipErr
}

func (m *mockBackend) RandomPlaylistTrack(_ context.Context, _ string) (*domain.Track, error) {
	m.mu.Lock()
	m.fallbackCalls++
	m.mu.Unlock()
	return m.fallbackTrack, m.fallbackErr
}

func (m *mockBackend) startedTracks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.started))
	copy(result, m.started)
	return result
}

func (m *mockBackend) fallbackCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fallbackCalls
}

type mockHistoryStore struct {
	entries   []domain.HistoryEntry
	appendErr error
}

var _ ports.HistoryStore = (*mockHistoryStore)(nil)

func (m *mockHistoryStore) Append(entry domain.HistoryEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryStore) Entries() []domain.HistoryEntry {
	return m.entries
}

type mockNotifier struct {
	mu    sync.Mutex
	count int
}

var _ ports.UpdateNotifier = (*mockNotifier)(nil)

func (m *mockNotifier) NotifyUpdate() {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()
}

func (m *mockNotifier) notifications() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// newTestOrchestrator builds an orchestrator around the given backend with a
// fresh queue, store, and notifier.
func newTestOrchestrator(backend *mockBackend, cfg LoopConfig) (*Orchestrator, *mockHistoryStore, *mockNotifier) {
	store := &mockHistoryStore{}
	notifier := &mockNotifier{}
	orch := NewOrchestrator(testQueue(), backend, NewHistoryService(store), notifier, cfg)
	return orch, store, notifier
}
