// Package presenters builds the Discord responses and embeds the bot sends.
// Everything here is pure: no session access, no side effects, no failures.
package presenters

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const twitchPurple = 0x6034B2

// LiveStream carries the fields of a stream record that the announcement
// embed renders.
type LiveStream struct {
	Login   string
	Name    string
	Title   string
	Game    string
	Viewers int
}

// LiveNotificationEmbed renders the "went live" announcement. Missing
// optional fields fall back to defaults: unknown game, zero viewers.
func LiveNotificationEmbed(s LiveStream) *discordgo.MessageEmbed {
	channelURL := fmt.Sprintf("https://twitch.tv/%s", s.Login)

	game := s.Game
	if game == "" {
		game = "Unknown"
	}

	return &discordgo.MessageEmbed{
		Title:       s.Title,
		URL:         channelURL,
		Description: fmt.Sprintf("[Watch Here](%s)", channelURL),
		Color:       twitchPurple,
		Author: &discordgo.MessageEmbedAuthor{
			Name: fmt.Sprintf("%s is now live on Twitch!", s.Name),
			URL:  channelURL,
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Game", Value: game, Inline: true},
			{Name: "Viewers", Value: fmt.Sprintf("%d", s.Viewers), Inline: true},
		},
		Image: &discordgo.MessageEmbedImage{
			URL: fmt.Sprintf("https://static-cdn.jtvnw.net/previews-ttv/live_user_%s-1920x1080.jpg", s.Login),
		},
	}
}
