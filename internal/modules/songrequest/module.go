package songrequest

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/streamdj/streamdj/internal/bot"
	"github.com/streamdj/streamdj/internal/modules/songrequest/application/ports"
	"github.com/streamdj/streamdj/internal/modules/songrequest/application/usecases"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
	"github.com/streamdj/streamdj/internal/modules/songrequest/infrastructure"
	"github.com/streamdj/streamdj/internal/modules/songrequest/presentation"
)

func init() {
	bot.Register(&SongRequestModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*SongRequestModule)(nil)

// SongRequestModule provides viewer song requests with playback orchestration.
type SongRequestModule struct {
	config       *Config
	orchestrator *usecases.Orchestrator
	handlers     *presentation.Handlers
}

// Name returns the module name.
func (m *SongRequestModule) Name() string {
	return "songrequest"
}

// Commands returns the chat commands for this module.
func (m *SongRequestModule) Commands() []bot.ChatCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *SongRequestModule) CommandHandlers() map[string]bot.CommandHandler {
	return presentation.CommandHandlers(m.handlers)
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *SongRequestModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init wires the Spotify backend, queue, history, and orchestrator, and
// starts the playback loop.
func (m *SongRequestModule) Init(deps bot.ModuleDependencies) error {
	backend, err := infrastructure.NewSpotifyBackend(context.Background(), infrastructure.SpotifyConfig{
		ClientID:     m.config.SpotifyClientID,
		ClientSecret: m.config.SpotifyClientSecret,
		RefreshToken: m.config.SpotifyRefreshToken,
	})
	if err != nil {
		return fmt.Errorf("failed to create Spotify backend: %w", err)
	}

	// An empty HISTORY_FILE disables persistence.
	var store ports.HistoryStore = infrastructure.NewMemoryHistoryStore()
	if m.config.HistoryFile != "" {
		fileStore, err := infrastructure.NewFileHistoryStore(m.config.HistoryFile)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		store = fileStore
	}
	history := usecases.NewHistoryService(store)

	queue := domain.NewQueue(m.config.Rules(), m.config.SmartVoting)
	queue.SetBlacklist(m.config.Blacklist())

	m.orchestrator = usecases.NewOrchestrator(queue, backend, history, nil, m.config.LoopConfig())
	m.handlers = presentation.NewHandlers(m.orchestrator, history)

	return m.orchestrator.Start()
}

// Shutdown stops the playback loop.
func (m *SongRequestModule) Shutdown() error {
	if m.orchestrator != nil {
		m.orchestrator.Stop()
	}
	return nil
}
