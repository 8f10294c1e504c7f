package bot

import (
	"fmt"
	"log/slog"
	"strings"

	twitch "github.com/gempir/go-twitch-irc/v4"
)

// Bot manages the Twitch chat connection and module coordination.
type Bot struct {
	config   *Config
	client   *twitch.Client
	modules  []Module
	commands map[string]ChatCommand
	handlers map[string]CommandHandler
	connErr  chan error
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	return &Bot{
		config:   cfg,
		modules:  make([]Module, 0),
		commands: make(map[string]ChatCommand),
		handlers: make(map[string]CommandHandler),
		connErr:  make(chan error, 1),
	}
}

// LoadModules loads modules from the global registry.
func (b *Bot) LoadModules() {
	b.modules = Modules()
}

// Start initializes the modules, connects to Twitch chat, and joins the
// configured channel.
func (b *Bot) Start() error {
	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	if err := b.buildCommandTable(); err != nil {
		return fmt.Errorf("invalid command table: %w", err)
	}

	token := b.config.TwitchToken
	if !strings.HasPrefix(token, "oauth:") {
		token = "oauth:" + token
	}

	b.client = twitch.NewClient(b.config.TwitchUsername, token)
	b.client.OnPrivateMessage(b.handlePrivateMessage)
	b.client.Join(b.config.TwitchChannel)

	// Connect blocks until the connection is closed.
	go func() {
		b.connErr <- b.client.Connect()
	}()

	slog.Info("started bot",
		"username", b.config.TwitchUsername,
		"channel", b.config.TwitchChannel,
	)

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	if b.client != nil {
		return b.client.Disconnect()
	}

	return nil
}

// ConnectionErr reports the terminal error of the chat connection, if any.
// The channel receives at most one value, after the connection closes.
func (b *Bot) ConnectionErr() <-chan error {
	return b.connErr
}

// initModules initializes all loaded modules, loading module configuration
// first where a module asks for it.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Config: b.config,
	}

	for _, mod := range b.modules {
		if cm, ok := mod.(ConfigurableModule); ok {
			if err := cm.LoadConfig(); err != nil {
				return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
			}
		}
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// buildCommandTable indexes every module command by canonical name and
// alias, rejecting collisions and commands without a handler.
func (b *Bot) buildCommandTable() error {
	for _, mod := range b.modules {
		handlers := mod.CommandHandlers()
		for _, cmd := range mod.Commands() {
			handler, ok := handlers[cmd.Name]
			if !ok {
				return fmt.Errorf("command %q has no handler in module %s", cmd.Name, mod.Name())
			}
			for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
				name = strings.ToLower(name)
				if _, exists := b.commands[name]; exists {
					return fmt.Errorf("duplicate command name %q in module %s", name, mod.Name())
				}
				b.commands[name] = cmd
				b.handlers[name] = handler
			}
		}
	}
	return nil
}

// handlePrivateMessage routes "!command args" chat messages to handlers.
func (b *Bot) handlePrivateMessage(message twitch.PrivateMessage) {
	text := strings.TrimSpace(message.Message)
	if !strings.HasPrefix(text, "!") {
		return
	}

	name, args, _ := strings.Cut(text[1:], " ")
	name = strings.ToLower(name)
	cmd, ok := b.commands[name]
	if !ok {
		return
	}

	level := levelFromMessage(message, b.config.TwitchChannel)
	if level < cmd.Level {
		slog.Debug("command denied",
			"command", name,
			"user", message.User.Name,
			"level", level.String(),
			"required", cmd.Level.String(),
		)
		return
	}

	msg := ChatMessage{
		Channel:     message.Channel,
		Username:    message.User.Name,
		DisplayName: message.User.DisplayName,
		Command:     name,
		Args:        strings.TrimSpace(args),
		Level:       level,
	}

	responder := NewTwitchResponder(b.client, message.Channel, message.User.DisplayName)
	if err := b.handlers[name](msg, responder); err != nil {
		slog.Error("failed to handle command", "command", name, "user", msg.Username, "error", err)
		_ = responder.Reply("Something went wrong, please try again.")
	}
}

// levelFromMessage derives the user's permission level from IRC badges.
func levelFromMessage(message twitch.PrivateMessage, channel string) PermissionLevel {
	badges := message.User.Badges
	switch {
	case badges["broadcaster"] > 0 || strings.EqualFold(message.User.Name, channel):
		return LevelBroadcaster
	case badges["moderator"] > 0:
		return LevelModerator
	case badges["subscriber"] > 0 || badges["founder"] > 0:
		return LevelSubscriber
	default:
		return LevelEveryone
	}
}
