package domain

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Queue is the single source of truth for pending song requests. All mutation
// runs inside one critical section, so concurrent admissions for the same URI
// are linearized and the queue never holds two entries for one track.
//
// Ordering invariant: pinned entries keep their relative order at the front;
// unpinned entries follow, sorted by descending vote count when smart voting
// is enabled (stable, so ties keep insertion order) or by insertion order
// otherwise.
type Queue struct {
	mu sync.Mutex

	entries     []*QueueEntry
	rules       Rules
	blacklist   Blacklist
	smartVoting bool
	paused      bool

	lastPlayed  map[string]time.Time // URI -> last pop-for-playback
	lastRequest map[string]time.Time // username -> last accepted or voted request
	now         func() time.Time
}

// NewQueue creates an empty queue with the given rules.
func NewQueue(rules Rules, smartVoting bool) *Queue {
	return &Queue{
		entries:     make([]*QueueEntry, 0),
		rules:       rules,
		smartVoting: smartVoting,
		lastPlayed:  make(map[string]time.Time),
		lastRequest: make(map[string]time.Time),
		now:         time.Now,
	}
}

// Admit runs the full admission pipeline for a request and returns the
// decision as a value. The whole pipeline is one atomic critical section.
func (q *Queue) Admit(track Track, username string) Admission {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()

	if q.paused {
		return Admission{Outcome: OutcomePaused}
	}

	if q.rules.UserCooldown > 0 {
		if last, ok := q.lastRequest[username]; ok && now.Sub(last) < q.rules.UserCooldown {
			return Admission{Outcome: OutcomeUserCooldown}
		}
	}

	if rule, ok := q.blacklist.Match(track); ok {
		return Admission{Outcome: OutcomeBlacklisted, MatchedRule: rule}
	}

	if len(q.entries) >= q.rules.MaxQueueSize {
		return Admission{Outcome: OutcomeFull}
	}

	if q.userRequestCount(username) >= q.rules.MaxUserRequests {
		return Admission{Outcome: OutcomeUserLimit}
	}

	if track.Duration > q.rules.MaxTrackLength {
		return Admission{Outcome: OutcomeTooLong}
	}

	if existing := q.find(track.URI); existing != nil {
		if !q.smartVoting {
			return Admission{Outcome: OutcomeDuplicate}
		}
		if !existing.HasRequester(username) {
			existing.Votes++
			existing.Requesters = append(existing.Requesters, username)
			q.lastRequest[username] = now
			q.sortLocked()
			slog.Info("vote added", "track", track.FullName(), "user", username,
				"votes", existing.Votes)
		}
		return Admission{Outcome: OutcomeVoted, Votes: existing.Votes}
	}

	if last, ok := q.lastPlayed[track.URI]; ok && now.Sub(last) < q.rules.TrackCooldown {
		return Admission{Outcome: OutcomeOnCooldown}
	}

	entry := NewQueueEntry(track, username)
	q.entries = append(q.entries, &entry)
	q.lastRequest[username] = now
	q.sortLocked()
	slog.Info("request accepted", "track", track.FullName(), "user", username)

	position, wait := q.positionLocked(track.URI)
	return Admission{Outcome: OutcomeAccepted, Position: position, Wait: wait}
}

// PopNext removes and returns the head of the queue, recording the track's
// cooldown timestamp. Returns false if the queue is empty.
func (q *Queue) PopNext() (QueueEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return QueueEntry{}, false
	}

	head := q.entries[0]
	q.entries = q.entries[1:]
	q.lastPlayed[head.Track.URI] = q.now()
	slog.Info("popped from queue", "track", head.Track.FullName())
	return head.clone(), true
}

// Move relocates the entry at from to position to and marks it pinned, so
// manual placement survives future automatic sorts. Invalid indices are a
// no-op returning false.
func (q *Queue) Move(from, to int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.validIndex(from) || !q.validIndex(to) {
		return false
	}

	entry := q.entries[from]
	entry.Pinned = true
	q.entries = append(q.entries[:from], q.entries[from+1:]...)

	rest := append(make([]*QueueEntry, 0, len(q.entries)+1), q.entries[:to]...)
	rest = append(rest, entry)
	q.entries = append(rest, q.entries[to:]...)
	return true
}

// Pin marks the entry at index as manually placed and re-sorts, which pulls
// it to the front behind any previously pinned entries.
func (q *Queue) Pin(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.validIndex(index) {
		return false
	}
	q.entries[index].Pinned = true
	q.sortLocked()
	return true
}

// Unpin clears the pin flag and re-sorts immediately.
func (q *Queue) Unpin(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.validIndex(index) {
		return false
	}
	q.entries[index].Pinned = false
	q.sortLocked()
	return true
}

// Remove deletes the entry at index.
func (q *Queue) Remove(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.validIndex(index) {
		return false
	}
	removed := q.entries[index]
	q.entries = append(q.entries[:index], q.entries[index+1:]...)
	slog.Info("removed from queue", "track", removed.Track.FullName())
	return true
}

// Clear removes all entries and returns how many were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	count := len(q.entries)
	q.entries = q.entries[:0]
	slog.Info("cleared queue", "count", count)
	return count
}

// SetSmartVoting switches the ordering comparator and re-sorts immediately.
// Accumulated votes are kept either way; the toggle only changes whether they
// affect order.
func (q *Queue) SetSmartVoting(enabled bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.smartVoting = enabled
	q.sortLocked()
}

// SmartVoting reports whether vote-based ordering is active.
func (q *Queue) SmartVoting() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.smartVoting
}

// SetPaused toggles global request admission.
func (q *Queue) SetPaused(paused bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paused = paused
}

// Paused reports whether request admission is paused.
func (q *Queue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// SetRules swaps the admission rules. In-flight decisions keep the snapshot
// they started with.
func (q *Queue) SetRules(rules Rules) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rules = rules
}

// Rules returns the current rules snapshot.
func (q *Queue) Rules() Rules {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.rules
}

// SetBlacklist swaps the blacklist.
func (q *Queue) SetBlacklist(blacklist Blacklist) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.blacklist = blacklist
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Entries returns a copy of the queue in play order.
func (q *Queue) Entries() []QueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	result := make([]QueueEntry, len(q.entries))
	for i, entry := range q.entries {
		result[i] = entry.clone()
	}
	return result
}

// TotalDuration returns the summed duration of all pending entries.
func (q *Queue) TotalDuration() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()

	var total time.Duration
	for _, entry := range q.entries {
		total += entry.Track.Duration
	}
	return total
}

// UserRequestCount returns how many pending entries list the user as a requester.
func (q *Queue) UserRequestCount(username string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.userRequestCount(username)
}

func (q *Queue) userRequestCount(username string) int {
	count := 0
	for _, entry := range q.entries {
		if entry.HasRequester(username) {
			count++
		}
	}
	return count
}

func (q *Queue) find(uri string) *QueueEntry {
	for _, entry := range q.entries {
		if entry.Track.URI == uri {
			return entry
		}
	}
	return nil
}

func (q *Queue) validIndex(index int) bool {
	return 0 <= index && index < len(q.entries)
}

// positionLocked returns the 1-indexed position of the entry with the given
// URI and the summed duration of everything ahead of it.
func (q *Queue) positionLocked(uri string) (int, time.Duration) {
	var wait time.Duration
	for i, entry := range q.entries {
		if entry.Track.URI == uri {
			return i + 1, wait
		}
		wait += entry.Track.Duration
	}
	return 0, 0
}

// sortLocked re-establishes the ordering invariant: pinned entries first in
// their current relative order, then unpinned entries, vote-sorted when smart
// voting is on. Must hold q.mu.
func (q *Queue) sortLocked() {
	pinned := make([]*QueueEntry, 0, len(q.entries))
	unpinned := make([]*QueueEntry, 0, len(q.entries))
	for _, entry := range q.entries {
		if entry.Pinned {
			pinned = append(pinned, entry)
		} else {
			unpinned = append(unpinned, entry)
		}
	}

	if q.smartVoting {
		sort.SliceStable(unpinned, func(i, j int) bool {
			return unpinned[i].Votes > unpinned[j].Votes
		})
	}

	q.entries = append(pinned, unpinned...)
}
