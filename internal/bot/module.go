package bot

// PermissionLevel is the minimum chat role required to run a command.
// Levels are ordered: a broadcaster passes every check.
type PermissionLevel int

const (
	LevelEveryone PermissionLevel = iota
	LevelSubscriber
	LevelModerator
	LevelBroadcaster
)

// String returns the level name for logging.
func (l PermissionLevel) String() string {
	switch l {
	case LevelSubscriber:
		return "subscriber"
	case LevelModerator:
		return "moderator"
	case LevelBroadcaster:
		return "broadcaster"
	default:
		return "everyone"
	}
}

// ChatCommand describes a chat command a module provides. Commands are
// invoked as "!<name> <args>"; aliases route to the same handler.
type ChatCommand struct {
	Name    string
	Aliases []string
	Level   PermissionLevel
	Usage   string
}

// ChatMessage is a parsed command invocation from chat.
type ChatMessage struct {
	Channel     string
	Username    string
	DisplayName string
	Command     string
	Args        string
	Level       PermissionLevel
}

// CommandHandler handles a chat command and replies via the Responder.
type CommandHandler func(msg ChatMessage, r Responder) error

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Config *Config
}

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the chat commands that this module provides.
	Commands() []ChatCommand

	// CommandHandlers returns a map of command names to their handlers.
	// Every command returned by Commands must have a handler under its
	// canonical name.
	CommandHandlers() map[string]CommandHandler

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Called before Init() and before the chat connection is established.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
