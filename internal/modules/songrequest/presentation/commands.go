package presentation

import "github.com/streamdj/streamdj/internal/bot"

// Commands returns the chat command table for the song request module.
func Commands() []bot.ChatCommand {
	return []bot.ChatCommand{
		{
			Name:    "songrequest",
			Aliases: []string{"sr"},
			Level:   bot.LevelEveryone,
			Usage:   "!sr <song name or Spotify link>",
		},
		{
			Name:  "song",
			Level: bot.LevelEveryone,
			Usage: "!song",
		},
		{
			Name:  "queue",
			Level: bot.LevelEveryone,
			Usage: "!queue",
		},
		{
			Name:  "toptracks",
			Level: bot.LevelEveryone,
			Usage: "!toptracks",
		},
		{
			Name:  "toprequesters",
			Level: bot.LevelEveryone,
			Usage: "!toprequesters",
		},
		{
			Name:  "skip",
			Level: bot.LevelModerator,
			Usage: "!skip",
		},
		{
			Name:  "playnext",
			Level: bot.LevelModerator,
			Usage: "!playnext",
		},
		{
			Name:  "clearqueue",
			Level: bot.LevelModerator,
			Usage: "!clearqueue",
		},
		{
			Name:  "pausereq",
			Level: bot.LevelModerator,
			Usage: "!pausereq",
		},
		{
			Name:  "resumereq",
			Level: bot.LevelModerator,
			Usage: "!resumereq",
		},
		{
			Name:  "move",
			Level: bot.LevelModerator,
			Usage: "!move <from> <to>",
		},
		{
			Name:  "remove",
			Level: bot.LevelModerator,
			Usage: "!remove <position>",
		},
		{
			Name:  "pin",
			Level: bot.LevelModerator,
			Usage: "!pin <position>",
		},
		{
			Name:  "unpin",
			Level: bot.LevelModerator,
			Usage: "!unpin <position>",
		},
		{
			Name:  "srstats",
			Level: bot.LevelModerator,
			Usage: "!srstats",
		},
		{
			Name:  "smartvoting",
			Level: bot.LevelBroadcaster,
			Usage: "!smartvoting <on|off>",
		},
		{
			Name:  "resetfallback",
			Level: bot.LevelBroadcaster,
			Usage: "!resetfallback",
		},
	}
}
