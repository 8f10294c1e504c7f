package domain

import (
	"strconv"
	"strings"
)

// QueueEntry wraps a Track with its request metadata while pending. Entries
// are owned exclusively by the Queue; callers only ever see copies.
type QueueEntry struct {
	Track      Track
	Votes      int
	Requesters []string // insertion order, no duplicates
	Pinned     bool     // manually placed, exempt from vote-based reordering
}

// NewQueueEntry creates an entry for the track's first request.
func NewQueueEntry(track Track, username string) QueueEntry {
	return QueueEntry{
		Track:      track,
		Votes:      1,
		Requesters: []string{username},
	}
}

// HasRequester returns true if the user already requested this entry.
func (e *QueueEntry) HasRequester(username string) bool {
	for _, r := range e.Requesters {
		if r == username {
			return true
		}
	}
	return false
}

// RequesterList returns the requesters joined for display, truncated to at
// most three names with a "+N more" suffix.
func (e *QueueEntry) RequesterList() string {
	if len(e.Requesters) <= 3 {
		return strings.Join(e.Requesters, ", ")
	}
	return strings.Join(e.Requesters[:3], ", ") + " (+" + strconv.Itoa(len(e.Requesters)-3) + " more)"
}

// clone returns a deep copy safe to hand outside the queue's lock.
func (e *QueueEntry) clone() QueueEntry {
	requesters := make([]string, len(e.Requesters))
	copy(requesters, e.Requesters)
	return QueueEntry{
		Track:      e.Track,
		Votes:      e.Votes,
		Requesters: requesters,
		Pinned:     e.Pinned,
	}
}
