package songrequest

import (
	"time"

	"github.com/streamdj/streamdj/internal/modules/songrequest/application/usecases"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
	"github.com/streamdj/streamdj/internal/modules/songrequest/infrastructure"
)

// Config holds the song request module configuration.
type Config struct {
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID,notEmpty"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET,notEmpty"`
	SpotifyRefreshToken string `env:"SPOTIFY_REFRESH_TOKEN,notEmpty"`
	FallbackPlaylistID  string `env:"FALLBACK_PLAYLIST_ID"`

	MaxQueueSize         int `env:"MAX_QUEUE_SIZE"          envDefault:"20"`
	MaxUserRequests      int `env:"MAX_USER_REQUESTS"       envDefault:"3"`
	MaxSongLengthMinutes int `env:"MAX_SONG_LENGTH_MINUTES" envDefault:"10"`
	SongCooldownMinutes  int `env:"SONG_COOLDOWN_MINUTES"   envDefault:"30"`
	UserCooldownMinutes  int `env:"USER_COOLDOWN_MINUTES"   envDefault:"0"`

	BlacklistSongs   []string `env:"BLACKLIST_SONGS"   envSeparator:","`
	BlacklistArtists []string `env:"BLACKLIST_ARTISTS" envSeparator:","`

	SmartVoting bool   `env:"SMART_VOTING" envDefault:"true"`
	HistoryFile string `env:"HISTORY_FILE" envDefault:"data/history.jsonl"`

	TickSeconds            int `env:"TICK_SECONDS"             envDefault:"4"`
	EndingSoonSeconds      int `env:"ENDING_SOON_SECONDS"      envDefault:"10"`
	HandoffPauseSeconds    int `env:"HANDOFF_PAUSE_SECONDS"    envDefault:"8"`
	FallbackPauseSeconds   int `env:"FALLBACK_PAUSE_SECONDS"   envDefault:"5"`
	FallbackBackoffSeconds int `env:"FALLBACK_BACKOFF_SECONDS" envDefault:"10"`
	ErrorBackoffSeconds    int `env:"ERROR_BACKOFF_SECONDS"    envDefault:"5"`
	FallbackErrorLimit     int `env:"FALLBACK_ERROR_LIMIT"     envDefault:"3"`
}

// Rules converts the configured limits to admission rules.
func (c *Config) Rules() domain.Rules {
	return domain.Rules{
		MaxQueueSize:    c.MaxQueueSize,
		MaxUserRequests: c.MaxUserRequests,
		MaxTrackLength:  time.Duration(c.MaxSongLengthMinutes) * time.Minute,
		TrackCooldown:   time.Duration(c.SongCooldownMinutes) * time.Minute,
		UserCooldown:    time.Duration(c.UserCooldownMinutes) * time.Minute,
	}
}

// Blacklist converts the configured fragments to a blacklist.
func (c *Config) Blacklist() domain.Blacklist {
	return domain.Blacklist{
		Titles:  c.BlacklistSongs,
		Artists: c.BlacklistArtists,
	}
}

// LoopConfig converts the configured timings to an orchestrator loop config.
func (c *Config) LoopConfig() usecases.LoopConfig {
	cfg := usecases.DefaultLoopConfig()
	cfg.TickInterval = time.Duration(c.TickSeconds) * time.Second
	cfg.EndingSoon = time.Duration(c.EndingSoonSeconds) * time.Second
	cfg.HandoffPause = time.Duration(c.HandoffPauseSeconds) * time.Second
	cfg.FallbackPause = time.Duration(c.FallbackPauseSeconds) * time.Second
	cfg.FallbackBackoff = time.Duration(c.FallbackBackoffSeconds) * time.Second
	cfg.ErrorBackoff = time.Duration(c.ErrorBackoffSeconds) * time.Second
	cfg.FallbackErrorLimit = c.FallbackErrorLimit
	cfg.FallbackPlaylistID = infrastructure.NormalizePlaylistID(c.FallbackPlaylistID)
	return cfg
}
