package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"github.com/streamdj/streamdj/internal/modules/songrequest/application/ports"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

var (
	// Handles https://open.spotify.com/track/... including intl-prefixed paths.
	spotifyTrackURLRegex = regexp.MustCompile(
		`(?:https?://)?(?:open\.)?spotify\.com/(?:intl-[a-z]{2}(?:-[A-Za-z]{2})?/)?track/([a-zA-Z0-9]+)`)
	spotifyTrackURIRegex = regexp.MustCompile(`spotify:track:([a-zA-Z0-9]+)`)
)

// SpotifyConfig holds the credentials for the Spotify Web API. The refresh
// token is obtained out-of-band; this adapter never runs an OAuth flow.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// SpotifyBackend implements ports.MusicBackend against the Spotify Web API.
type SpotifyBackend struct {
	client *spotify.Client
	randFn func(n int) int
}

var _ ports.MusicBackend = (*SpotifyBackend)(nil)

// NewSpotifyBackend authenticates against the Spotify Web API using the
// pre-obtained refresh token and returns a ready backend.
func NewSpotifyBackend(ctx context.Context, cfg SpotifyConfig) (*SpotifyBackend, error) {
	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserModifyPlaybackState,
			spotifyauth.ScopeUserReadCurrentlyPlaying,
			spotifyauth.ScopeUserReadPlaybackState,
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistReadCollaborative,
		),
	)

	token := &oauth2.Token{
		RefreshToken: cfg.RefreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force an immediate refresh
	}
	client := spotify.New(auth.Client(ctx, token))

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Spotify: %w", err)
	}
	slog.Info("connected to Spotify", "user", user.DisplayName)

	return &SpotifyBackend{
		client: client,
		randFn: rand.Intn,
	}, nil
}

// Search resolves a free-text query to the first track match, or (nil, nil)
// when nothing matched.
func (s *SpotifyBackend) Search(ctx context.Context, query string) (*domain.Track, error) {
	results, err := s.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("track search failed: %w", err)
	}
	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return nil, nil
	}
	track := convertTrack(&results.Tracks.Tracks[0])
	return &track, nil
}

// ResolveLink resolves a Spotify track URL or URI to a track, or (nil, nil)
// if the link does not name a track.
func (s *SpotifyBackend) ResolveLink(ctx context.Context, link string) (*domain.Track, error) {
	id, ok := extractTrackID(link)
	if !ok {
		return nil, nil
	}

	full, err := s.client.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve track %s: %w", id, err)
	}
	track := convertTrack(full)
	return &track, nil
}

// CurrentPlaybackState reports what the user's active device is playing.
func (s *SpotifyBackend) CurrentPlaybackState(ctx context.Context) (*ports.PlaybackState, error) {
	state, err := s.client.PlayerState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player state: %w", err)
	}

	result := &ports.PlaybackState{
		IsPlaying: state.Playing,
		Progress:  time.Duration(state.Progress) * time.Millisecond,
	}
	if state.Item != nil {
		track := convertTrack(state.Item)
		result.CurrentTrack = &track
	}
	return result, nil
}

// StartPlayback force-starts the given track URI on the active device.
func (s *SpotifyBackend) StartPlayback(ctx context.Context, uri string) error {
	opts := &spotify.PlayOptions{
		URIs: []spotify.URI{spotify.URI(uri)},
	}
	if err := s.client.PlayOpt(ctx, opts); err != nil {
		return fmt.Errorf("failed to start playback of %s: %w", uri, err)
	}
	return nil
}

// EnqueueNext appends the track to Spotify's own playback queue.
func (s *SpotifyBackend) EnqueueNext(ctx context.Context, uri string) error {
	id, ok := extractTrackID(uri)
	if !ok {
		return fmt.Errorf("not a track URI: %s", uri)
	}
	if err := s.client.QueueSong(ctx, spotify.ID(id)); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", uri, err)
	}
	return nil
}

// SkipCurrent advances to the next track on the active device.
func (s *SpotifyBackend) SkipCurrent(ctx context.Context) error {
	if err := s.client.Next(ctx); err != nil {
		return fmt.Errorf("failed to skip track: %w", err)
	}
	return nil
}

// RandomPlaylistTrack picks one track uniformly over the playlist's full
// index range. Two requests: one for the total, one for the picked offset.
func (s *SpotifyBackend) RandomPlaylistTrack(ctx context.Context, playlistID string) (*domain.Track, error) {
	id := spotify.ID(playlistID)

	probe, err := s.client.GetPlaylistItems(ctx, id, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}
	if probe.Total == 0 {
		return nil, nil
	}

	offset := s.randFn(int(probe.Total))
	page, err := s.client.GetPlaylistItems(ctx, id, spotify.Limit(1), spotify.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist item %d: %w", offset, err)
	}
	if len(page.Items) == 0 || page.Items[0].Track.Track == nil {
		return nil, nil
	}

	track := convertTrack(page.Items[0].Track.Track)
	return &track, nil
}

func convertTrack(full *spotify.FullTrack) domain.Track {
	artists := make([]string, 0, len(full.Artists))
	for _, artist := range full.Artists {
		artists = append(artists, artist.Name)
	}

	coverURL := ""
	if len(full.Album.Images) > 0 {
		coverURL = full.Album.Images[0].URL
	}

	return domain.Track{
		Title:    full.Name,
		Artist:   strings.Join(artists, ", "),
		URI:      string(full.URI),
		Duration: time.Duration(full.Duration) * time.Millisecond,
		CoverURL: coverURL,
	}
}

func extractTrackID(link string) (string, bool) {
	if m := spotifyTrackURLRegex.FindStringSubmatch(link); m != nil {
		return m[1], true
	}
	if m := spotifyTrackURIRegex.FindStringSubmatch(link); m != nil {
		return m[1], true
	}
	return "", false
}

// NormalizePlaylistID accepts a bare playlist id, an open.spotify.com
// playlist URL, or a spotify:playlist: URI and returns the bare id.
func NormalizePlaylistID(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if idx := strings.Index(value, "playlist/"); idx >= 0 {
		rest := value[idx+len("playlist/"):]
		if q := strings.IndexByte(rest, '?'); q >= 0 {
			rest = rest[:q]
		}
		return rest
	}
	if strings.Contains(value, "spotify:playlist:") {
		parts := strings.Split(value, ":")
		return parts[len(parts)-1]
	}
	return value
}
