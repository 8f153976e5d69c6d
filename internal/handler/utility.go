package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/elysium-discord/elysium-bot/internal/presenters"
)

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEmbed(s, i, presenters.HelpEmbed(), false)
}

func (b *Bot) handleRuntime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	now := time.Now()
	respond(s, i, presenters.RuntimeMessage(now, now.Sub(b.startedAt)), true)
}

func (b *Bot) handleSuggestion(s *discordgo.Session, i *discordgo.InteractionCreate) {
	suggestion := optionString(i.ApplicationCommandData().Options, "suggestion")

	doc, err := b.repo.Document(context.Background())
	if err != nil {
		respond(s, i, "An error occurred while registering your suggestion.", true)
		return
	}
	if doc.Bot.SuggestionsChannel == "" {
		respond(s, i, "The suggestions channel is not configured.", true)
		return
	}

	embed := presenters.SuggestionEmbed(suggestion)
	if _, err := s.ChannelMessageSendEmbed(doc.Bot.SuggestionsChannel, embed); err != nil {
		slog.Error("Failed to post suggestion", "channelID", doc.Bot.SuggestionsChannel, "error", err)
		respond(s, i, "An error occurred while registering your suggestion.", true)
		return
	}
	respond(s, i, fmt.Sprintf("Your suggestion has been registered!\n`Your Suggestion: %s`", suggestion), true)
}

func (b *Bot) handleAlert(s *discordgo.Session, i *discordgo.InteractionCreate) {
	issue := optionString(i.ApplicationCommandData().Options, "issue")

	doc, err := b.repo.Document(context.Background())
	if err != nil {
		respond(s, i, "An error occurred while sending your report.", true)
		return
	}
	if doc.Moderation.ModChannel == "" {
		respond(s, i, "Moderation channel is not configured.", true)
		return
	}

	embed := presenters.AlertEmbed(fmt.Sprintf("<#%s>", i.ChannelID), issue, doc.Moderation.ModRole, time.Now())
	if _, err := s.ChannelMessageSendEmbed(doc.Moderation.ModChannel, embed); err != nil {
		slog.Error("Failed to post alert", "channelID", doc.Moderation.ModChannel, "error", err)
		respond(s, i, "An error occurred while sending your report.", true)
		return
	}
	respond(s, i, "Your report has been sent", true)
}

func (b *Bot) handleShutdown(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	doc, err := b.repo.Document(ctx)
	if err != nil || interactionUserID(i) != doc.Bot.DevID {
		respond(s, i, notAuthorizedMessage, true)
		return
	}

	reason := optionString(i.ApplicationCommandData().Options, "reason")
	now := time.Now()
	embed := presenters.ShutdownEmbed(reason, now.Sub(b.startedAt), now)

	for _, channelID := range []string{doc.Bot.PublicLogChannel, doc.Bot.PrivateLogChannel} {
		if channelID == "" {
			continue
		}
		if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
			slog.Warn("Failed to post shutdown embed", "channelID", channelID, "error", err)
		}
	}

	respond(s, i, "Bot is shutting down...", true)
	b.shutdown()
}
