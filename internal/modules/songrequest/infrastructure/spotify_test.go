package infrastructure

import "testing"

func TestExtractTrackID(t *testing.T) {
	tests := []struct {
		name   string
		link   string
		wantID string
		wantOK bool
	}{
		{
			name:   "open URL",
			link:   "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			wantID: "4uLU6hMCjMI75M1A2tKUQC",
			wantOK: true,
		},
		{
			name:   "open URL with query params",
			link:   "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc123",
			wantID: "4uLU6hMCjMI75M1A2tKUQC",
			wantOK: true,
		},
		{
			name:   "intl-prefixed URL",
			link:   "https://open.spotify.com/intl-de/track/4uLU6hMCjMI75M1A2tKUQC",
			wantID: "4uLU6hMCjMI75M1A2tKUQC",
			wantOK: true,
		},
		{
			name:   "URL without scheme",
			link:   "open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			wantID: "4uLU6hMCjMI75M1A2tKUQC",
			wantOK: true,
		},
		{
			name:   "spotify URI",
			link:   "spotify:track:4uLU6hMCjMI75M1A2tKUQC",
			wantID: "4uLU6hMCjMI75M1A2tKUQC",
			wantOK: true,
		},
		{
			name:   "album link is not a track",
			link:   "https://open.spotify.com/album/4uLU6hMCjMI75M1A2tKUQC",
			wantOK: false,
		},
		{
			name:   "free text",
			link:   "never gonna give you up",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractTrackID(tt.link)
			if ok != tt.wantOK {
				t.Fatalf("extractTrackID(%q) ok = %v, want %v", tt.link, ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("extractTrackID(%q) = %q, want %q", tt.link, id, tt.wantID)
			}
		})
	}
}

func TestNormalizePlaylistID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"bare id", "37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
		{
			"playlist URL",
			"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			"37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			"playlist URL with query",
			"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=xyz",
			"37i9dQZF1DXcBWIGoYBM5M",
		},
		{"playlist URI", "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
		{"whitespace", "  37i9dQZF1DXcBWIGoYBM5M  ", "37i9dQZF1DXcBWIGoYBM5M"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePlaylistID(tt.value); got != tt.want {
				t.Errorf("NormalizePlaylistID(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
