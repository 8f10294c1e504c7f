package domain

import (
	"strings"
	"time"
)

// Rules is an immutable snapshot of the admission limits. Each Admit call
// evaluates against one consistent snapshot; swapping rules at runtime never
// affects a decision already in flight.
type Rules struct {
	MaxQueueSize    int
	MaxUserRequests int
	MaxTrackLength  time.Duration
	TrackCooldown   time.Duration // minimum gap before the same URI may play again
	UserCooldown    time.Duration // minimum gap between accepted requests per user
}

// DefaultRules returns the default admission limits.
func DefaultRules() Rules {
	return Rules{
		MaxQueueSize:    20,
		MaxUserRequests: 3,
		MaxTrackLength:  10 * time.Minute,
		TrackCooldown:   30 * time.Minute,
		UserCooldown:    0,
	}
}

// Blacklist holds case-insensitive substring fragments checked against every
// candidate track before admission.
type Blacklist struct {
	Titles  []string
	Artists []string
}

// Match returns the first matching fragment and true if the track's title or
// artist contains a blacklisted fragment. Empty fragments never match.
func (b Blacklist) Match(track Track) (string, bool) {
	title := strings.ToLower(track.Title)
	artist := strings.ToLower(track.Artist)

	for _, fragment := range b.Titles {
		f := strings.ToLower(strings.TrimSpace(fragment))
		if f != "" && strings.Contains(title, f) {
			return fragment, true
		}
	}
	for _, fragment := range b.Artists {
		f := strings.ToLower(strings.TrimSpace(fragment))
		if f != "" && strings.Contains(artist, f) {
			return fragment, true
		}
	}
	return "", false
}
