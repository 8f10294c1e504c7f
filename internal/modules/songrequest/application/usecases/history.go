package usecases

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/streamdj/streamdj/internal/modules/songrequest/application/ports"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

// TrackCount is a track with its play count.
type TrackCount struct {
	Title  string
	Artist string
	URI    string
	Plays  int
}

// RequesterCount is a requester with their request count.
type RequesterCount struct {
	Requester string
	Requests  int
}

// ArtistCount is an artist with their play count.
type ArtistCount struct {
	Artist string
	Plays  int
}

// Summary aggregates the play log over a window.
type Summary struct {
	TotalPlays       int
	UniqueTracks     int
	UniqueRequesters int     // autopilot excluded
	SkipRate         float64 // percentage of plays that were skipped
	AutopilotShare   float64 // percentage of plays from the fallback playlist
	TotalPlayTime    time.Duration
}

// HistoryService records played tracks and answers aggregate queries over the
// append-only log. Queries are pure functions over the store's entries.
type HistoryService struct {
	store ports.HistoryStore
	now   func() time.Time
}

// NewHistoryService creates a HistoryService backed by the given store.
func NewHistoryService(store ports.HistoryStore) *HistoryService {
	return &HistoryService{
		store: store,
		now:   time.Now,
	}
}

// Record appends a play-log entry for the track. Store failures are logged
// and swallowed: losing a history line must never disturb playback.
func (h *HistoryService) Record(track domain.Track, requester string, wasSkipped bool) {
	entry := domain.NewHistoryEntry(track, requester, wasSkipped)
	if err := h.store.Append(entry); err != nil {
		slog.Warn("failed to append history entry", "track", track.FullName(), "error", err)
		return
	}
	slog.Info("recorded play", "track", track.FullName(), "requester", requester,
		"skipped", wasSkipped)
}

// TopTracks returns the most-played tracks within the trailing window
// (0 = all time), counted by URI.
func (h *HistoryService) TopTracks(limit int, window time.Duration) []TrackCount {
	counts := make(map[string]*TrackCount)
	var order []string
	for _, e := range h.filter(window) {
		tc, ok := counts[e.URI]
		if !ok {
			tc = &TrackCount{Title: e.Title, Artist: e.Artist, URI: e.URI}
			counts[e.URI] = tc
			order = append(order, e.URI)
		}
		tc.Plays++
	}

	result := make([]TrackCount, 0, len(order))
	for _, uri := range order {
		result = append(result, *counts[uri])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Plays > result[j].Plays
	})
	return truncate(result, limit)
}

// TopRequesters returns the users with the most recorded plays within the
// window. Autopilot plays are excluded.
func (h *HistoryService) TopRequesters(limit int, window time.Duration) []RequesterCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range h.filter(window) {
		if strings.EqualFold(e.Requester, domain.AutopilotRequester) {
			continue
		}
		if _, ok := counts[e.Requester]; !ok {
			order = append(order, e.Requester)
		}
		counts[e.Requester]++
	}

	result := make([]RequesterCount, 0, len(order))
	for _, requester := range order {
		result = append(result, RequesterCount{Requester: requester, Requests: counts[requester]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Requests > result[j].Requests
	})
	return truncate(result, limit)
}

// TopArtists returns the most-played artists within the window.
func (h *HistoryService) TopArtists(limit int, window time.Duration) []ArtistCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range h.filter(window) {
		if _, ok := counts[e.Artist]; !ok {
			order = append(order, e.Artist)
		}
		counts[e.Artist]++
	}

	result := make([]ArtistCount, 0, len(order))
	for _, artist := range order {
		result = append(result, ArtistCount{Artist: artist, Plays: counts[artist]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Plays > result[j].Plays
	})
	return truncate(result, limit)
}

// Stats returns summary ratios over the window.
func (h *HistoryService) Stats(window time.Duration) Summary {
	entries := h.filter(window)
	if len(entries) == 0 {
		return Summary{}
	}

	uris := make(map[string]struct{})
	requesters := make(map[string]struct{})
	skipped := 0
	autopilot := 0
	var total time.Duration

	for _, e := range entries {
		uris[e.URI] = struct{}{}
		if strings.EqualFold(e.Requester, domain.AutopilotRequester) {
			autopilot++
		} else {
			requesters[e.Requester] = struct{}{}
		}
		if e.WasSkipped {
			skipped++
		}
		total += e.Duration
	}

	plays := len(entries)
	return Summary{
		TotalPlays:       plays,
		UniqueTracks:     len(uris),
		UniqueRequesters: len(requesters),
		SkipRate:         float64(skipped) / float64(plays) * 100,
		AutopilotShare:   float64(autopilot) / float64(plays) * 100,
		TotalPlayTime:    total,
	}
}

func (h *HistoryService) filter(window time.Duration) []domain.HistoryEntry {
	entries := h.store.Entries()
	if window <= 0 {
		return entries
	}

	cutoff := h.now().Add(-window)
	filtered := make([]domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
