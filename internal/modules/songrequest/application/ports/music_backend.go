package ports

import (
	"context"
	"time"

	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

// PlaybackState is the backend's view of what is currently playing.
type PlaybackState struct {
	IsPlaying    bool
	CurrentTrack *domain.Track
	Progress     time.Duration
}

// Remaining returns how much of the current track is left, or zero if nothing
// is playing.
func (s *PlaybackState) Remaining() time.Duration {
	if s == nil || s.CurrentTrack == nil {
		return 0
	}
	remaining := s.CurrentTrack.Duration - s.Progress
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MusicBackend defines the capability interface for the streaming-music
// service. Every operation is fallible; the core treats failures uniformly
// (log, back off, retry next tick) and never crashes on them. Lookups return
// (nil, nil) when nothing matched.
type MusicBackend interface {
	// Search resolves a free-text query to the best-matching track.
	Search(ctx context.Context, query string) (*domain.Track, error)

	// ResolveLink resolves a track link or URI to a track.
	ResolveLink(ctx context.Context, link string) (*domain.Track, error)

	// CurrentPlaybackState reports what the backend is playing right now.
	CurrentPlaybackState(ctx context.Context) (*PlaybackState, error)

	// StartPlayback force-starts playback of the given URI, interrupting
	// whatever is playing.
	StartPlayback(ctx context.Context, uri string) error

	// EnqueueNext appends the URI to the backend's own playback queue without
	// interrupting the current track.
	EnqueueNext(ctx context.Context, uri string) error

	// SkipCurrent skips the currently playing track.
	SkipCurrent(ctx context.Context) error

	// RandomPlaylistTrack picks one track uniformly at random from the
	// playlist's full extent.
	RandomPlaylistTrack(ctx context.Context, playlistID string) (*domain.Track, error)
}
