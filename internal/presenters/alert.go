package presenters

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// AlertEmbed renders a moderation alert. The reason is expected to be
// pre-formatted by the caller (matched word spoilered, reporter named, etc.).
func AlertEmbed(channelMention, reason, modRoleID string, now time.Time) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("In: %s\nReason: %s", channelMention, reason)
	if modRoleID != "" {
		desc += fmt.Sprintf("\n<@&%s>", modRoleID)
	}
	return &discordgo.MessageEmbed{
		Title:       "**ALERT!**",
		Description: desc,
		Color:       brandPurple,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
}

// SuggestionEmbed renders a user suggestion for the suggestions channel.
func SuggestionEmbed(suggestion string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "**Suggestion!**",
		Description: suggestion,
		Color:       brandPurple,
	}
}
