package presenters

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const brandPurple = 0x5A0C8A

const botTitle = "𝓔𝓵𝔂𝓼𝓲𝓾𝓶"

// BootEmbed is posted to the log channels when the bot comes online.
func BootEmbed(commandCount int, startedAt time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       botTitle,
		Description: fmt.Sprintf("**Status**: 🟢 Online\n**Synced Commands**: %d", commandCount),
		Color:       brandPurple,
		Timestamp:   startedAt.Format(time.RFC3339),
	}
}

// ShutdownEmbed is posted to the log channels before the bot exits.
func ShutdownEmbed(reason string, uptime time.Duration, now time.Time) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("**Status**: 🔴 Offline\n**Runtime**: %s", uptime.Round(time.Second))
	if reason != "" {
		desc = fmt.Sprintf("**Status**: 🔴 Offline\n**Reason**: %s\n**Runtime**: %s", reason, uptime.Round(time.Second))
	}
	return &discordgo.MessageEmbed{
		Title:       botTitle,
		Description: desc,
		Color:       brandPurple,
		Timestamp:   now.Format(time.RFC3339),
	}
}

// RuntimeMessage renders the /runtime reply.
func RuntimeMessage(now time.Time, uptime time.Duration) string {
	return fmt.Sprintf("As of %s,\nTime Elapsed: %s", now.Format("02/01/2006 15:04:05"), uptime.Round(time.Second))
}
