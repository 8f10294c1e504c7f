package songrequest

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SPOTIFY_CLIENT_ID", "client-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "client-secret")
	t.Setenv("SPOTIFY_REFRESH_TOKEN", "refresh-token")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	m := &SongRequestModule{}
	if err := m.LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	rules := m.config.Rules()
	if rules.MaxQueueSize != 20 {
		t.Errorf("MaxQueueSize = %d, want 20", rules.MaxQueueSize)
	}
	if rules.MaxUserRequests != 3 {
		t.Errorf("MaxUserRequests = %d, want 3", rules.MaxUserRequests)
	}
	if rules.MaxTrackLength != 10*time.Minute {
		t.Errorf("MaxTrackLength = %v, want 10m", rules.MaxTrackLength)
	}
	if rules.TrackCooldown != 30*time.Minute {
		t.Errorf("TrackCooldown = %v, want 30m", rules.TrackCooldown)
	}
	if rules.UserCooldown != 0 {
		t.Errorf("UserCooldown = %v, want 0", rules.UserCooldown)
	}

	if !m.config.SmartVoting {
		t.Error("SmartVoting default should be true")
	}
	if m.config.HistoryFile != "data/history.jsonl" {
		t.Errorf("HistoryFile = %q, want default path", m.config.HistoryFile)
	}

	loop := m.config.LoopConfig()
	if loop.TickInterval != 4*time.Second {
		t.Errorf("TickInterval = %v, want 4s", loop.TickInterval)
	}
	if loop.EndingSoon != 10*time.Second {
		t.Errorf("EndingSoon = %v, want 10s", loop.EndingSoon)
	}
	if loop.HandoffPause != 8*time.Second {
		t.Errorf("HandoffPause = %v, want 8s", loop.HandoffPause)
	}
	if loop.FallbackErrorLimit != 3 {
		t.Errorf("FallbackErrorLimit = %d, want 3", loop.FallbackErrorLimit)
	}
}

func TestLoadConfig_MissingSpotifyCredentials(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("SPOTIFY_REFRESH_TOKEN", "token")

	m := &SongRequestModule{}
	if err := m.LoadConfig(); err == nil {
		t.Error("expected error for missing client id, got nil")
	}
}

func TestLoadConfig_BlacklistAndPlaylist(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BLACKLIST_SONGS", "rickroll,nightcore")
	t.Setenv("BLACKLIST_ARTISTS", "Example Artist")
	t.Setenv("FALLBACK_PLAYLIST_ID", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=x")

	m := &SongRequestModule{}
	if err := m.LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	blacklist := m.config.Blacklist()
	if len(blacklist.Titles) != 2 || blacklist.Titles[1] != "nightcore" {
		t.Errorf("Titles = %v, want two comma-separated fragments", blacklist.Titles)
	}
	if len(blacklist.Artists) != 1 {
		t.Errorf("Artists = %v, want one entry", blacklist.Artists)
	}

	loop := m.config.LoopConfig()
	if loop.FallbackPlaylistID != "37i9dQZF1DXcBWIGoYBM5M" {
		t.Errorf("FallbackPlaylistID = %q, want bare id", loop.FallbackPlaylistID)
	}
}
