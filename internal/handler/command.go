package handler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var watchlistActionChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "add", Value: "add"},
	{Name: "remove", Value: "remove"},
	{Name: "show", Value: "show"},
}

// Commands is a list of all the commands the bot can handle.
// This is used to register the commands with Discord.
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "help",
		Description: "Shows the list of available commands.",
	},
	{
		Name:        "runtime",
		Description: "Shows how long the bot has been online.",
	},
	{
		Name:        "suggestion",
		Description: "Send a suggestion for the bot.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "suggestion",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "What is your suggestion?",
				Required:    true,
			},
		},
	},
	{
		Name:        "alert",
		Description: "Report an issue to the moderators.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "issue",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "What is the issue?",
				Required:    true,
			},
		},
	},
	{
		Name:        "watchlist",
		Description: "Edit or view the streamer watchlist.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "action",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "What to do with the watchlist.",
				Required:    true,
				Choices:     watchlistActionChoices,
			},
			{
				Name:        "streamer",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "The streamer name as shown in their twitch.tv link.",
				Required:    false,
			},
		},
	},
	{
		Name:        "setlivechannel",
		Description: "Set the channel live notifications are sent to.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "channel",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "The channel mention or id.",
				Required:    true,
			},
		},
	},
	{
		Name:        "setlivemessage",
		Description: "Set the message posted with live notifications.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "message",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "The new notification message.",
				Required:    true,
			},
			{
				Name:        "mention",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "Who to mention, e.g. a role.",
				Required:    false,
			},
		},
	},
	{
		Name:        "play",
		Description: "Queue a track from YouTube.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "search",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "A YouTube link or search text.",
				Required:    true,
			},
		},
	},
	{
		Name:        "skip",
		Description: "Skip the current track.",
	},
	{
		Name:        "queue",
		Description: "Show the current queue.",
	},
	{
		Name:        "stop",
		Description: "Stop playback and disconnect.",
	},
	{
		Name:        "pause",
		Description: "Pause playback.",
	},
	{
		Name:        "resume",
		Description: "Resume paused playback.",
	},
	{
		Name:        "shutdown",
		Description: "Stops the bot [Privileged Command].",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "reason",
				Type:        discordgo.ApplicationCommandOptionString,
				Description: "Why is the bot being shut down?",
				Required:    false,
			},
		},
	},
}

func EstablishCommands(s *discordgo.Session, guildID string) error {
	_, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, guildID, Commands)
	if err != nil {
		return fmt.Errorf("failed to establish commands: %w", err)
	}
	return nil
}
