package presenters_test

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/elysium-discord/elysium-bot/internal/presenters"
	"github.com/google/go-cmp/cmp"
)

func TestLiveNotificationEmbed(t *testing.T) {
	tests := []struct {
		name  string
		input presenters.LiveStream
		want  *discordgo.MessageEmbed
	}{
		{
			name: "full record",
			input: presenters.LiveStream{
				Login:   "alice",
				Name:    "Alice",
				Title:   "Speedrun Sunday",
				Game:    "Celeste",
				Viewers: 420,
			},
			want: &discordgo.MessageEmbed{
				Title:       "Speedrun Sunday",
				URL:         "https://twitch.tv/alice",
				Description: "[Watch Here](https://twitch.tv/alice)",
				Color:       0x6034B2,
				Author: &discordgo.MessageEmbedAuthor{
					Name: "Alice is now live on Twitch!",
					URL:  "https://twitch.tv/alice",
				},
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Game", Value: "Celeste", Inline: true},
					{Name: "Viewers", Value: "420", Inline: true},
				},
				Image: &discordgo.MessageEmbedImage{
					URL: "https://static-cdn.jtvnw.net/previews-ttv/live_user_alice-1920x1080.jpg",
				},
			},
		},
		{
			name: "missing optional fields fall back to defaults",
			input: presenters.LiveStream{
				Login: "bob",
				Name:  "Bob",
				Title: "untitled",
			},
			want: &discordgo.MessageEmbed{
				Title:       "untitled",
				URL:         "https://twitch.tv/bob",
				Description: "[Watch Here](https://twitch.tv/bob)",
				Color:       0x6034B2,
				Author: &discordgo.MessageEmbedAuthor{
					Name: "Bob is now live on Twitch!",
					URL:  "https://twitch.tv/bob",
				},
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Game", Value: "Unknown", Inline: true},
					{Name: "Viewers", Value: "0", Inline: true},
				},
				Image: &discordgo.MessageEmbedImage{
					URL: "https://static-cdn.jtvnw.net/previews-ttv/live_user_bob-1920x1080.jpg",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := presenters.LiveNotificationEmbed(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LiveNotificationEmbed() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQueueMessage(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{
			name:   "empty queue",
			titles: nil,
			want:   "Queue is empty!",
		},
		{
			name:   "numbered titles",
			titles: []string{"First Song", "Second Song"},
			want:   "**Current Queue:**\n1. First Song\n2. Second Song",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := presenters.QueueMessage(tt.titles)
			if got != tt.want {
				t.Errorf("QueueMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
