package handler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/elysium-discord/elysium-bot/internal/player"
	"github.com/elysium-discord/elysium-bot/internal/repository"
	"github.com/elysium-discord/elysium-bot/internal/voice"
)

const notAuthorizedMessage = "❌ You don't have permission to use this command."

// Bot holds the dependencies the command handlers need. One Bot serves all
// guilds; per-guild playback state lives in the player manager.
type Bot struct {
	repo       *repository.ConfigRepository
	resolver   player.Resolver
	ffmpegPath string
	startedAt  time.Time
	shutdown   func()

	players *player.Manager

	mu        sync.Mutex
	notifiers map[string]*ChannelNotifier
}

// NewBot wires the command surface. shutdown is invoked by the privileged
// shutdown command after the exit embeds have been posted.
func NewBot(
	repo *repository.ConfigRepository,
	resolver player.Resolver,
	ffmpegPath string,
	startedAt time.Time,
	shutdown func(),
) *Bot {
	return &Bot{
		repo:       repo,
		resolver:   resolver,
		ffmpegPath: ffmpegPath,
		startedAt:  startedAt,
		shutdown:   shutdown,
		players:    player.NewManager(),
		notifiers:  make(map[string]*ChannelNotifier),
	}
}

func (b *Bot) MakeInteractionCreateHandler() InteractionCreateHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}

		command := i.ApplicationCommandData()
		switch command.Name {
		case "help":
			b.handleHelp(s, i)
		case "runtime":
			b.handleRuntime(s, i)
		case "suggestion":
			b.handleSuggestion(s, i)
		case "alert":
			b.handleAlert(s, i)
		case "watchlist":
			b.handleWatchlist(s, i)
		case "setlivechannel":
			b.handleSetLiveChannel(s, i)
		case "setlivemessage":
			b.handleSetLiveMessage(s, i)
		case "play":
			b.handlePlay(s, i)
		case "skip":
			b.handleSkip(s, i)
		case "queue":
			b.handleQueue(s, i)
		case "stop":
			b.handleStop(s, i)
		case "pause":
			b.handlePause(s, i)
		case "resume":
			b.handleResume(s, i)
		case "shutdown":
			b.handleShutdown(s, i)
		default:
			slog.Warn("Unknown command", "name", command.Name)
		}
	}
}

// guildPlayer returns the guild's player, creating it on first use, and the
// notifier that routes its playback updates.
func (b *Bot) guildPlayer(s *discordgo.Session, guildID string) (*player.Player, *ChannelNotifier) {
	b.mu.Lock()
	notifier, ok := b.notifiers[guildID]
	if !ok {
		notifier = &ChannelNotifier{}
		b.notifiers[guildID] = notifier
	}
	b.mu.Unlock()

	p := b.players.Get(guildID, func() *player.Player {
		return player.New(
			voice.NewSession(s, guildID, b.ffmpegPath),
			b.resolver,
			notifier,
			player.Options{},
		)
	})
	return p, notifier
}

// authorized reports whether the caller is the configured developer or
// stream manager.
func (b *Bot) authorized(ctx context.Context, userID string) bool {
	doc, err := b.repo.Document(ctx)
	if err != nil {
		slog.Error("Failed to load config for authorization check", "error", err)
		return false
	}
	if userID == "" {
		return false
	}
	return userID == doc.Bot.DevID || userID == doc.Bot.StreamManagerID
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, option := range options {
		if option.Name == name && option.Type == discordgo.ApplicationCommandOptionString {
			return option.StringValue()
		}
	}
	return ""
}
