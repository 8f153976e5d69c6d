package presenters

import "github.com/bwmarrin/discordgo"

// HelpEmbed lists the commands the bot offers.
func HelpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "**𝓔𝓵𝔂𝓼𝓲𝓾𝓶 - Help Centre**",
		Description: "Need help? Here is a list of commands available with this bot.",
		Color:       brandPurple,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "General",
				Value: "**/help** - Displays this help menu.\n" +
					"**/runtime** - Shows how long the bot has been online.\n" +
					"**/suggestion {text}** - Send a suggestion for the bot.\n" +
					"**/alert {issue}** - Report an issue to the moderators.",
				Inline: false,
			},
			{
				Name: "Stream notifications",
				Value: "**/watchlist {action} {streamer}** - Edit or view the streamer watchlist.\n" +
					"**/setlivemessage {message} {mention}** - Set the live notification message.\n" +
					"**/setlivechannel {channel}** - Set the live notification channel.",
				Inline: false,
			},
			{
				Name: "Music",
				Value: "**/play {search}** - Queue a track from YouTube.\n" +
					"**/skip** - Skip the current track.\n" +
					"**/queue** - Show the queue.\n" +
					"**/pause** / **/resume** - Pause or resume playback.\n" +
					"**/stop** - Stop playback and disconnect.",
				Inline: false,
			},
			{
				Name:   "Privileged",
				Value:  "**/shutdown {reason}** - Stop the bot (authorised users only).",
				Inline: false,
			},
		},
	}
}
