package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/elysium-discord/elysium-bot/internal/player"
	"github.com/elysium-discord/elysium-bot/internal/presenters"
	"github.com/elysium-discord/elysium-bot/internal/youtube"
)

func (b *Bot) handlePlay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	search := optionString(i.ApplicationCommandData().Options, "search")

	voiceChannelID, err := requesterVoiceChannel(s, i.GuildID, interactionUserID(i))
	if err != nil {
		respond(s, i, "You are not in a voice channel!", true)
		return
	}

	// Resolution hits the network; acknowledge now, reply when done.
	if err := respondDeferred(s, i); err != nil {
		slog.Error("Failed to defer play response", "error", err)
		return
	}

	p, notifier := b.guildPlayer(s, i.GuildID)
	notifier.SetTarget(s, i.ChannelID)

	title, err := p.Enqueue(context.Background(), voiceChannelID, search)
	switch {
	case err == nil:
		followUp(s, i, fmt.Sprintf("Added to queue: **%s**", title))
	case errors.Is(err, player.ErrWrongChannel):
		followUp(s, i, "You must be in the same voice channel as the bot!")
	case errors.Is(err, youtube.ErrNoResults):
		followUp(s, i, "No results found!")
	default:
		followUp(s, i, fmt.Sprintf("An error occurred while searching: %s", err))
	}
}

func (b *Bot) handleSkip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	p, _ := b.guildPlayer(s, i.GuildID)
	switch err := p.Skip(); {
	case err == nil:
		respond(s, i, "Song skipped!", false)
	case errors.Is(err, player.ErrNotConnected):
		respond(s, i, "I'm not connected to a voice channel!", true)
	case errors.Is(err, player.ErrNothingPlaying):
		respond(s, i, "Nothing is currently playing!", true)
	default:
		respond(s, i, fmt.Sprintf("An error occurred: %s", err), true)
	}
}

func (b *Bot) handleQueue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	p, _ := b.guildPlayer(s, i.GuildID)
	respond(s, i, presenters.QueueMessage(p.Queue()), false)
}

func (b *Bot) handleStop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	p, _ := b.guildPlayer(s, i.GuildID)
	switch err := p.Stop(); {
	case err == nil:
		respond(s, i, "Stopped playing and disconnected!", false)
	case errors.Is(err, player.ErrNotConnected):
		respond(s, i, "I'm not connected to a voice channel!", true)
	default:
		respond(s, i, fmt.Sprintf("An error occurred: %s", err), true)
	}
}

func (b *Bot) handlePause(s *discordgo.Session, i *discordgo.InteractionCreate) {
	p, _ := b.guildPlayer(s, i.GuildID)
	switch err := p.Pause(); {
	case err == nil:
		respond(s, i, "Paused!", false)
	case errors.Is(err, player.ErrNotConnected), errors.Is(err, player.ErrNothingPlaying):
		respond(s, i, "Nothing is currently playing!", true)
	case errors.Is(err, player.ErrAlreadyPaused):
		respond(s, i, "Audio is already paused!", true)
	default:
		respond(s, i, fmt.Sprintf("An error occurred: %s", err), true)
	}
}

func (b *Bot) handleResume(s *discordgo.Session, i *discordgo.InteractionCreate) {
	p, _ := b.guildPlayer(s, i.GuildID)
	switch err := p.Resume(); {
	case err == nil:
		respond(s, i, "Resumed!", false)
	case errors.Is(err, player.ErrNotConnected):
		respond(s, i, "I'm not connected to a voice channel!", true)
	case errors.Is(err, player.ErrNotPaused):
		respond(s, i, "Audio is not paused!", true)
	default:
		respond(s, i, fmt.Sprintf("An error occurred: %s", err), true)
	}
}

// requesterVoiceChannel finds the voice channel the user is currently in.
func requesterVoiceChannel(s *discordgo.Session, guildID, userID string) (string, error) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to read guild state: %w", err)
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID && vs.ChannelID != "" {
			return vs.ChannelID, nil
		}
	}
	return "", &UserError{Message: "You are not in a voice channel!"}
}
