package bot

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	TwitchChannel  string `env:"TWITCH_CHANNEL,notEmpty"`
	TwitchUsername string `env:"TWITCH_USERNAME,notEmpty"`
	TwitchToken    string `env:"TWITCH_TOKEN,notEmpty"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// IRC channel names are lowercase logins.
	cfg.TwitchChannel = strings.ToLower(cfg.TwitchChannel)

	return cfg, nil
}
