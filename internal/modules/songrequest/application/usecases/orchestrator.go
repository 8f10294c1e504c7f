package usecases

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/streamdj/streamdj/internal/modules/songrequest/application/ports"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

// LoopConfig holds the orchestrator's tunable timings and thresholds. The
// defaults are calibration values carried over from long-running operation,
// not hard guarantees about backend timing.
type LoopConfig struct {
	TickInterval       time.Duration // poll cadence of the reconcile loop
	EndingSoon         time.Duration // remaining time below which the next track is handed off
	HandoffPause       time.Duration // loop pause after a soft enqueue
	FallbackPause      time.Duration // loop pause after a successful fallback start
	FallbackBackoff    time.Duration // loop pause after a failed fallback attempt
	ErrorBackoff       time.Duration // loop pause after a failed playback-state fetch
	FallbackErrorLimit int           // consecutive failures before fallback disables
	FallbackPlaylistID string        // empty disables fallback entirely
	RequestTimeout     time.Duration // bound on chat-dispatched song requests
	SkipTimeout        time.Duration // bound on chat-dispatched skips
}

// DefaultLoopConfig returns the reference timings.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TickInterval:       4 * time.Second,
		EndingSoon:         10 * time.Second,
		HandoffPause:       8 * time.Second,
		FallbackPause:      5 * time.Second,
		FallbackBackoff:    10 * time.Second,
		ErrorBackoff:       5 * time.Second,
		FallbackErrorLimit: 3,
		RequestTimeout:     15 * time.Second,
		SkipTimeout:        10 * time.Second,
	}
}

// tickState is the orchestrator's classification of one tick's observations.
type tickState int

const (
	// stateIdle: queue empty, nothing playing. Try the fallback playlist.
	stateIdle tickState = iota
	// stateFallbackActive: queue empty but something is playing. No-op.
	stateFallbackActive
	// stateQueueStarved: queue has entries but nothing is playing. Force-start.
	stateQueueStarved
	// stateTrackEnding: playing with little time left. Soft-enqueue the next entry.
	stateTrackEnding
	// statePlaying: playing with plenty of time left. No-op.
	statePlaying
)

func (s tickState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateFallbackActive:
		return "fallback_active"
	case stateQueueStarved:
		return "queue_starved"
	case stateTrackEnding:
		return "track_ending"
	default:
		return "playing"
	}
}

// classify computes the tick state once from the observed inputs.
func classify(queueLen int, isPlaying, hasCurrent bool, remaining, endingSoon time.Duration) tickState {
	if queueLen == 0 {
		if isPlaying {
			return stateFallbackActive
		}
		return stateIdle
	}
	if !isPlaying {
		return stateQueueStarved
	}
	if hasCurrent && remaining < endingSoon {
		return stateTrackEnding
	}
	return statePlaying
}

// Orchestrator runs the playback reconciliation loop. One goroutine (the home
// goroutine) owns the loop; chat-triggered operations are marshalled onto it
// through a bounded-deadline dispatch channel, so queue admissions never run
// concurrently with a tick.
//
// The orchestrator is designed to run indefinitely through backend outages:
// transient errors are logged at warning level and retried on a later tick.
type Orchestrator struct {
	queue    *domain.Queue
	backend  ports.MusicBackend
	history  *HistoryService
	notifier ports.UpdateNotifier
	cfg      LoopConfig

	calls chan homeCall

	mu               sync.Mutex
	current          *domain.QueueEntry // what the orchestrator believes is playing
	pendingHandoff   *domain.QueueEntry // soft-enqueued, waiting to be observed playing
	fallbackErrors   int
	fallbackReported bool // resets once fallback succeeds again

	lifecycleMu sync.Mutex
	running     bool
	cancel      context.CancelFunc
	stopped     chan struct{} // closed when the loop goroutine exits
}

// NewOrchestrator wires the orchestrator. A nil notifier is replaced with a
// no-op.
func NewOrchestrator(
	queue *domain.Queue,
	backend ports.MusicBackend,
	history *HistoryService,
	notifier ports.UpdateNotifier,
	cfg LoopConfig,
) *Orchestrator {
	if notifier == nil {
		notifier = ports.NoopNotifier{}
	}

	stopped := make(chan struct{})
	close(stopped) // not running yet: dispatch fails fast with ErrStopped

	return &Orchestrator{
		queue:    queue,
		backend:  backend,
		history:  history,
		notifier: notifier,
		cfg:      cfg,
		calls:    make(chan homeCall),
		stopped:  stopped,
	}
}

// Queue exposes the request queue for observers (UI, overlay). All of its
// methods are safe for concurrent use.
func (o *Orchestrator) Queue() *domain.Queue {
	return o.queue
}

// Start launches the playback loop.
func (o *Orchestrator) Start() error {
	o.lifecycleMu.Lock()
	defer o.lifecycleMu.Unlock()

	if o.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	o.stopped = make(chan struct{})
	o.running = true

	go o.run(ctx)

	o.notifier.NotifyUpdate()
	return nil
}

// Stop cancels the loop, including any in-flight tick's backend calls, and
// waits for the loop goroutine to return. Dispatched callers blocked on the
// loop unblock with ErrStopped.
func (o *Orchestrator) Stop() {
	o.lifecycleMu.Lock()
	if !o.running {
		o.lifecycleMu.Unlock()
		return
	}
	o.running = false
	cancel := o.cancel
	stopped := o.stopped
	o.lifecycleMu.Unlock()

	cancel()
	<-stopped

	o.notifier.NotifyUpdate()
}

// Running reports whether the loop is active.
func (o *Orchestrator) Running() bool {
	o.lifecycleMu.Lock()
	defer o.lifecycleMu.Unlock()
	return o.running
}

func (o *Orchestrator) run(ctx context.Context) {
	slog.Info("playback loop started", "tick", o.cfg.TickInterval)
	defer func() {
		o.lifecycleMu.Lock()
		o.running = false
		close(o.stopped)
		o.lifecycleMu.Unlock()
		slog.Info("playback loop stopped")
	}()

	timer := time.NewTimer(o.cfg.TickInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case call := <-o.calls:
			call.execute()
		case <-timer.C:
			delay := o.tick(ctx)
			timer.Reset(delay)
		}
	}
}

// tick reconciles queue state against observed backend state and returns the
// delay until the next tick. Never panics the loop: every failure path logs
// and backs off.
func (o *Orchestrator) tick(ctx context.Context) time.Duration {
	state, err := o.backend.CurrentPlaybackState(ctx)
	if err != nil {
		slog.Warn("failed to fetch playback state", "error", err)
		return o.cfg.ErrorBackoff
	}
	if state == nil {
		state = &ports.PlaybackState{}
	}

	o.confirmHandoff(state)

	st := classify(o.queue.Len(), state.IsPlaying, state.CurrentTrack != nil,
		state.Remaining(), o.cfg.EndingSoon)
	slog.Debug("tick", "state", st.String(), "queue", o.queue.Len(),
		"playing", state.IsPlaying)

	switch st {
	case stateIdle:
		return o.playFallback(ctx)

	case stateQueueStarved:
		// If a handed-off track never surfaced, recover it before popping
		// another entry.
		if pending := o.takePendingHandoff(); pending != nil {
			o.startEntry(ctx, *pending)
			return o.cfg.TickInterval
		}
		o.playNext(ctx, true)
		return o.cfg.TickInterval

	case stateTrackEnding:
		if o.hasPendingHandoff() {
			// Already handed off; let the backend finish its transition.
			return o.cfg.TickInterval
		}
		o.playNext(ctx, false)
		return o.cfg.HandoffPause

	default: // stateFallbackActive, statePlaying
		return o.cfg.TickInterval
	}
}

// playNext pops the queue head and hands it to the backend: force-start when
// nothing is playing, soft enqueue when something is. Queue mutation happens
// inside the queue's critical section; backend I/O happens after, outside any
// lock.
func (o *Orchestrator) playNext(ctx context.Context, forceStart bool) {
	entry, ok := o.queue.PopNext()
	if !ok {
		return
	}
	o.notifier.NotifyUpdate()

	if forceStart {
		o.startEntry(ctx, entry)
		return
	}

	if err := o.backend.EnqueueNext(ctx, entry.Track.URI); err != nil {
		slog.Warn("failed to enqueue next track", "track", entry.Track.FullName(),
			"error", err)
		return
	}
	slog.Info("handed off to backend queue", "track", entry.Track.FullName())
	o.setPendingHandoff(&entry)
}

// startEntry force-starts a queue entry and records it as played. History is
// appended only after the start call succeeds.
func (o *Orchestrator) startEntry(ctx context.Context, entry domain.QueueEntry) {
	if err := o.backend.StartPlayback(ctx, entry.Track.URI); err != nil {
		slog.Warn("failed to start playback", "track", entry.Track.FullName(),
			"error", err)
		return
	}
	slog.Info("started playback", "track", entry.Track.FullName())

	o.setCurrent(&entry)
	o.history.Record(entry.Track, firstRequester(entry), false)
	o.notifier.NotifyUpdate()
}

// confirmHandoff promotes a soft-enqueued entry to current once the backend
// is observed playing it, and records it in history at that point.
func (o *Orchestrator) confirmHandoff(state *ports.PlaybackState) {
	o.mu.Lock()
	pending := o.pendingHandoff
	if pending == nil || !state.IsPlaying || state.CurrentTrack == nil ||
		state.CurrentTrack.URI != pending.Track.URI {
		o.mu.Unlock()
		return
	}
	o.pendingHandoff = nil
	o.current = pending
	o.mu.Unlock()

	slog.Info("handoff confirmed", "track", pending.Track.FullName())
	o.history.Record(pending.Track, firstRequester(*pending), false)
	o.notifier.NotifyUpdate()
}

// playFallback plays one random track from the fallback playlist. Guarded by
// the consecutive-error counter: after FallbackErrorLimit failures it reports
// once and stays disabled until the counter is reset.
func (o *Orchestrator) playFallback(ctx context.Context) time.Duration {
	if o.cfg.FallbackPlaylistID == "" {
		slog.Debug("no fallback playlist configured")
		return o.cfg.TickInterval
	}

	o.mu.Lock()
	if o.fallbackErrors >= o.cfg.FallbackErrorLimit {
		reported := o.fallbackReported
		o.fallbackReported = true
		o.mu.Unlock()
		if !reported {
			slog.Warn("fallback disabled after repeated errors",
				"errors", o.cfg.FallbackErrorLimit)
		}
		return o.cfg.TickInterval
	}
	o.mu.Unlock()

	track, err := o.backend.RandomPlaylistTrack(ctx, o.cfg.FallbackPlaylistID)
	if err != nil {
		return o.fallbackFailure(err)
	}
	if track == nil {
		return o.fallbackFailure(nil)
	}

	if err := o.backend.StartPlayback(ctx, track.URI); err != nil {
		return o.fallbackFailure(err)
	}

	entry := domain.QueueEntry{
		Track:      *track,
		Requesters: []string{domain.AutopilotRequester},
	}
	o.setCurrent(&entry)
	o.history.Record(*track, domain.AutopilotRequester, false)

	o.mu.Lock()
	o.fallbackErrors = 0
	o.fallbackReported = false
	o.mu.Unlock()

	slog.Info("playing fallback track", "track", track.FullName())
	o.notifier.NotifyUpdate()
	return o.cfg.FallbackPause
}

func (o *Orchestrator) fallbackFailure(err error) time.Duration {
	o.mu.Lock()
	o.fallbackErrors++
	count := o.fallbackErrors
	o.mu.Unlock()

	slog.Warn("fallback attempt failed", "error", err,
		"errors", count, "limit", o.cfg.FallbackErrorLimit)
	return o.cfg.FallbackBackoff
}

// ResetFallback re-enables the fallback source after it auto-disabled.
func (o *Orchestrator) ResetFallback() {
	o.mu.Lock()
	o.fallbackErrors = 0
	o.fallbackReported = false
	o.mu.Unlock()
}

// CurrentTrack returns a copy of the entry the orchestrator believes is
// playing, or nil if none.
func (o *Orchestrator) CurrentTrack() *domain.QueueEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current == nil {
		return nil
	}
	entry := *o.current
	requesters := make([]string, len(entry.Requesters))
	copy(requesters, entry.Requesters)
	entry.Requesters = requesters
	return &entry
}

func (o *Orchestrator) setCurrent(entry *domain.QueueEntry) {
	o.mu.Lock()
	o.current = entry
	o.mu.Unlock()
}

func (o *Orchestrator) setPendingHandoff(entry *domain.QueueEntry) {
	o.mu.Lock()
	o.pendingHandoff = entry
	o.mu.Unlock()
}

func (o *Orchestrator) hasPendingHandoff() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pendingHandoff != nil
}

func (o *Orchestrator) takePendingHandoff() *domain.QueueEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	pending := o.pendingHandoff
	o.pendingHandoff = nil
	return pending
}

func firstRequester(entry domain.QueueEntry) string {
	if len(entry.Requesters) == 0 {
		return "Unknown"
	}
	return entry.Requesters[0]
}
