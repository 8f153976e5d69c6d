package twitch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/elysium-discord/elysium-bot/internal/presenters"
	"github.com/elysium-discord/elysium-bot/internal/repository"
	"github.com/elysium-discord/elysium-bot/internal/schedule"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultPollInterval is how often the watcher checks live status.
const DefaultPollInterval = 90 * time.Second

// Announcer delivers a live notification to a Discord channel.
type Announcer interface {
	Announce(channelID, content string, embed *discordgo.MessageEmbed) error
}

// Runner drives the watcher's two independent cadences: the live-status poll
// and the token-refresh check. A failure in one loop never stops the other.
type Runner struct {
	repo      *repository.ConfigRepository
	watcher   *Watcher
	refresher *TokenRefresher
	announcer Announcer
	clock     clockwork.Clock

	pollInterval time.Duration
	refreshCron  string
}

func NewRunner(
	repo *repository.ConfigRepository,
	watcher *Watcher,
	refresher *TokenRefresher,
	announcer Announcer,
	clock clockwork.Clock,
	refreshCron string,
) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Runner{
		repo:         repo,
		watcher:      watcher,
		refresher:    refresher,
		announcer:    announcer,
		clock:        clock,
		pollInterval: DefaultPollInterval,
		refreshCron:  refreshCron,
	}
}

// Run blocks until the context is cancelled. The token is refreshed once up
// front so the first poll cycles have valid credentials.
func (r *Runner) Run(ctx context.Context) {
	if err := r.refresher.RefreshIfExpired(ctx); err != nil {
		slog.Error("initial token refresh failed", "error", err)
	}

	go r.refreshLoop(ctx)
	r.pollLoop(ctx)
}

func (r *Runner) pollLoop(ctx context.Context) {
	ticker := r.clock.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.pollOnce(ctx)
		}
	}
}

func (r *Runner) pollOnce(ctx context.Context) {
	pollID := uuid.NewString()

	doc, err := r.repo.Document(ctx)
	if err != nil {
		slog.Error("failed to load config for poll", "poll_id", pollID, "error", err)
		return
	}
	if doc.Twitch.ChannelID == "" {
		return
	}

	notifications, err := r.watcher.Poll(ctx, doc.Twitch.Watchlist)
	if err != nil {
		slog.Warn("poll failed, will retry next cycle", "poll_id", pollID, "error", err)
		return
	}

	for _, n := range notifications {
		embed := presenters.LiveNotificationEmbed(presenters.LiveStream{
			Login:   n.UserLogin,
			Name:    n.UserName,
			Title:   n.Title,
			Game:    n.GameName,
			Viewers: n.ViewerCount,
		})
		if err := r.announcer.Announce(doc.Twitch.ChannelID, doc.Twitch.LiveMsg, embed); err != nil {
			slog.Error("failed to announce stream", "poll_id", pollID, "login", n.UserLogin, "error", err)
			continue
		}
		slog.Info("announced new stream", "poll_id", pollID, "login", n.UserLogin, "started_at", n.StartedAt)
	}
}

func (r *Runner) refreshLoop(ctx context.Context) {
	err := schedule.Loop(ctx, r.clock, r.refreshCron, func(ctx context.Context) {
		if err := r.refresher.RefreshIfExpired(ctx); err != nil {
			slog.Error("token refresh failed, will retry next cadence", "error", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("token refresh loop stopped", "error", err)
	}
}
