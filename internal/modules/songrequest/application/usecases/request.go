package usecases

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

// RequestResult is the structured outcome of a chat song request, enough for
// the presentation layer to build a reply without touching the queue.
type RequestResult struct {
	Outcome     domain.Outcome
	Track       domain.Track
	Position    int
	Wait        time.Duration
	Votes       int
	MatchedRule string
}

// Request resolves a query (free text or track link) and admits it for the
// given user. The call is marshalled onto the home goroutine and bounded by
// the configured request timeout; a timeout or stopped loop reads as
// OutcomeNotFound, never as an error surfaced to chat.
func (o *Orchestrator) Request(ctx context.Context, query, username string) RequestResult {
	var result RequestResult
	err := o.do(ctx, o.cfg.RequestTimeout, func(ctx context.Context) {
		result = o.handleRequest(ctx, query, username)
	})
	if err != nil {
		if !errors.Is(err, ErrStopped) {
			slog.Warn("song request timed out", "query", query, "error", err)
		}
		return RequestResult{Outcome: domain.OutcomeNotFound}
	}
	return result
}

func (o *Orchestrator) handleRequest(ctx context.Context, query, username string) RequestResult {
	track, err := o.resolveQuery(ctx, query)
	if err != nil {
		slog.Warn("track lookup failed", "query", query, "error", err)
		return RequestResult{Outcome: domain.OutcomeNotFound}
	}
	if track == nil {
		return RequestResult{Outcome: domain.OutcomeNotFound}
	}

	admission := o.queue.Admit(*track, username)
	if admission.Outcome.Admitted() {
		o.notifier.NotifyUpdate()
	}

	return RequestResult{
		Outcome:     admission.Outcome,
		Track:       *track,
		Position:    admission.Position,
		Wait:        admission.Wait,
		Votes:       admission.Votes,
		MatchedRule: admission.MatchedRule,
	}
}

func (o *Orchestrator) resolveQuery(ctx context.Context, query string) (*domain.Track, error) {
	if isTrackLink(query) {
		return o.backend.ResolveLink(ctx, query)
	}
	return o.backend.Search(ctx, query)
}

func isTrackLink(query string) bool {
	return strings.Contains(query, "spotify.com/") || strings.HasPrefix(query, "spotify:")
}

// Skip records the current track as skipped and instructs the backend to
// advance. Returns the skipped track for the chat reply, or nil if nothing
// was attributed as current.
func (o *Orchestrator) Skip(ctx context.Context) (*domain.Track, error) {
	var skipped *domain.Track
	err := o.do(ctx, o.cfg.SkipTimeout, func(ctx context.Context) {
		if current := o.CurrentTrack(); current != nil {
			o.history.Record(current.Track, firstRequester(*current), true)
			track := current.Track
			skipped = &track
		}
		if err := o.backend.SkipCurrent(ctx); err != nil {
			slog.Warn("failed to skip current track", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return skipped, nil
}

// PlayNext pops the queue head and force-starts it, regardless of what is
// currently playing. Used for manual advancement by the operator.
func (o *Orchestrator) PlayNext(ctx context.Context) error {
	var popErr error
	err := o.do(ctx, o.cfg.SkipTimeout, func(ctx context.Context) {
		entry, ok := o.queue.PopNext()
		if !ok {
			popErr = ErrQueueEmpty
			return
		}
		o.notifier.NotifyUpdate()
		o.startEntry(ctx, entry)
	})
	if err != nil {
		return err
	}
	return popErr
}

// ClearQueue drops all pending entries.
func (o *Orchestrator) ClearQueue() int {
	count := o.queue.Clear()
	o.notifier.NotifyUpdate()
	return count
}

// PauseRequests toggles global request admission.
func (o *Orchestrator) PauseRequests(paused bool) {
	o.queue.SetPaused(paused)
	o.notifier.NotifyUpdate()
}

// SetSmartVoting switches vote-based ordering on or off.
func (o *Orchestrator) SetSmartVoting(enabled bool) {
	o.queue.SetSmartVoting(enabled)
	o.notifier.NotifyUpdate()
}

// SetRules swaps the admission rules at runtime.
func (o *Orchestrator) SetRules(rules domain.Rules) {
	o.queue.SetRules(rules)
	o.notifier.NotifyUpdate()
}

// SetBlacklist swaps the blacklist at runtime.
func (o *Orchestrator) SetBlacklist(blacklist domain.Blacklist) {
	o.queue.SetBlacklist(blacklist)
	o.notifier.NotifyUpdate()
}

// MoveEntry relocates a queue entry, pinning it in place.
func (o *Orchestrator) MoveEntry(from, to int) bool {
	moved := o.queue.Move(from, to)
	if moved {
		o.notifier.NotifyUpdate()
	}
	return moved
}

// RemoveEntry deletes a queue entry by index.
func (o *Orchestrator) RemoveEntry(index int) bool {
	removed := o.queue.Remove(index)
	if removed {
		o.notifier.NotifyUpdate()
	}
	return removed
}

// PinEntry exempts a queue entry from vote-based reordering.
func (o *Orchestrator) PinEntry(index int) bool {
	pinned := o.queue.Pin(index)
	if pinned {
		o.notifier.NotifyUpdate()
	}
	return pinned
}

// UnpinEntry returns a pinned entry to automatic ordering.
func (o *Orchestrator) UnpinEntry(index int) bool {
	unpinned := o.queue.Unpin(index)
	if unpinned {
		o.notifier.NotifyUpdate()
	}
	return unpinned
}
