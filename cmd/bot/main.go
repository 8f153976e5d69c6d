package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/elysium-discord/elysium-bot/internal/config"
	"github.com/elysium-discord/elysium-bot/internal/datalayer"
	"github.com/elysium-discord/elysium-bot/internal/handler"
	"github.com/elysium-discord/elysium-bot/internal/moderation"
	"github.com/elysium-discord/elysium-bot/internal/presenters"
	"github.com/elysium-discord/elysium-bot/internal/repository"
	"github.com/elysium-discord/elysium-bot/internal/schedule"
	"github.com/elysium-discord/elysium-bot/internal/twitch"
	"github.com/elysium-discord/elysium-bot/internal/youtube"
	"github.com/jonboulle/clockwork"
)

func runBotForever() error {
	startedAt := time.Now()

	if err := config.LoadEnv(); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("No .env file found, continuing without it")
		} else {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	discordConfig, err := config.NewDiscordConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load discord config: %w", err)
	}

	botConfig, err := config.NewBotConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load bot config: %w", err)
	}
	if err := schedule.ValidateCron(botConfig.TokenRefreshCron); err != nil {
		return fmt.Errorf("invalid token refresh cron: %w", err)
	}

	store := datalayer.NewFileStore(botConfig.ConfigPath)
	repo := repository.NewConfigRepository(store)

	doc, err := store.Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load config document: %w", err)
	}

	twitchClient, err := twitch.NewClient(doc.Twitch.ClientID, doc.Twitch.ClientSecret, doc.Twitch.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to create twitch client: %w", err)
	}

	clock := clockwork.NewRealClock()
	watcher := twitch.NewWatcher(twitchClient)
	refresher := twitch.NewTokenRefresher(repo, twitchClient, clock)

	// The privileged shutdown command and OS signals share one exit path.
	quit := make(chan struct{})
	var quitOnce sync.Once
	requestShutdown := func() {
		quitOnce.Do(func() { close(quit) })
	}

	bot := handler.NewBot(repo, youtube.NewResolver(), botConfig.FFmpegPath, startedAt, requestShutdown)
	screener := moderation.NewScreener(store)

	session, err := handler.NewSession(discordConfig.Token, handler.Handlers{
		Ready:             handler.ReadyLog,
		InteractionCreate: bot.MakeInteractionCreateHandler(),
		MessageCreate:     screener.HandleMessage,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.Warn("failed to close session", "error", err)
		}
	}()

	guildID := discordConfig.GuildID
	if discordConfig.RunBotGlobally {
		guildID = ""
	}
	if err := handler.EstablishCommands(session, guildID); err != nil {
		return fmt.Errorf("failed to establish commands: %w", err)
	}

	runnerCtx, cancelRunner := context.WithCancel(context.Background())
	defer cancelRunner()

	announcer := &handler.ChannelAnnouncer{Session: session}
	runner := twitch.NewRunner(repo, watcher, refresher, announcer, clock, botConfig.TokenRefreshCron)
	go runner.Run(runnerCtx)

	bootEmbed := presenters.BootEmbed(len(handler.Commands), startedAt)
	for _, channelID := range []string{doc.Bot.PublicLogChannel, doc.Bot.PrivateLogChannel} {
		if channelID == "" {
			continue
		}
		if _, err := session.ChannelMessageSendEmbed(channelID, bootEmbed); err != nil {
			slog.Warn("failed to post boot embed", "channelID", channelID, "error", err)
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		slog.Info("received shutdown signal")
	case <-quit:
		slog.Info("shutdown requested by command")
	}
	return nil
}

func main() {
	if err := runBotForever(); err != nil {
		log.Fatalf("failed to run bot: %v", err)
	}
}
