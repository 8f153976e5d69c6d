package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/elysium-discord/elysium-bot/internal/datalayer"
)

// ConfigRepository exposes the domain mutations the bot performs on the
// persisted config document. Every mutation is durable before the outcome
// string is returned.
type ConfigRepository struct {
	store datalayer.Store
}

func NewConfigRepository(store datalayer.Store) *ConfigRepository {
	return &ConfigRepository{store: store}
}

func (r *ConfigRepository) Document(ctx context.Context) (datalayer.Document, error) {
	return r.store.Load(ctx)
}

// FollowStreamer adds a streamer to the watchlist. Adding an existing entry
// is a no-op reported as such. The returned string is always suitable as a
// user-facing reply.
func (r *ConfigRepository) FollowStreamer(ctx context.Context, streamer string) (string, error) {
	streamer = strings.ToLower(strings.TrimSpace(streamer))
	if streamer == "" {
		return "Please provide a streamer name.", fmt.Errorf("empty streamer name")
	}

	var already bool
	_, err := r.store.Update(ctx, func(doc *datalayer.Document) error {
		if slices.Contains(doc.Twitch.Watchlist, streamer) {
			already = true
			return nil
		}
		doc.Twitch.Watchlist = append(doc.Twitch.Watchlist, streamer)
		return nil
	})
	if err != nil {
		return fmt.Sprintf("An error occurred while adding %s to the list.", streamer), err
	}
	if already {
		return fmt.Sprintf("%s is already on the list.", streamer), nil
	}
	return fmt.Sprintf("%s has been successfully added to the list.", streamer), nil
}

// UnfollowStreamer removes a streamer from the watchlist. Removing a
// non-member is a no-op reported as such.
func (r *ConfigRepository) UnfollowStreamer(ctx context.Context, streamer string) (string, error) {
	streamer = strings.ToLower(strings.TrimSpace(streamer))
	if streamer == "" {
		return "Please provide a streamer name.", fmt.Errorf("empty streamer name")
	}

	var missing bool
	_, err := r.store.Update(ctx, func(doc *datalayer.Document) error {
		idx := slices.Index(doc.Twitch.Watchlist, streamer)
		if idx < 0 {
			missing = true
			return nil
		}
		doc.Twitch.Watchlist = slices.Delete(doc.Twitch.Watchlist, idx, idx+1)
		return nil
	})
	if err != nil {
		return fmt.Sprintf("An error occurred while removing %s from the list.", streamer), err
	}
	if missing {
		return fmt.Sprintf("%s is not in the list - cannot be removed.", streamer), nil
	}
	return fmt.Sprintf("%s has been successfully removed from the list.", streamer), nil
}

// Watchlist returns the current watchlist in configured order.
func (r *ConfigRepository) Watchlist(ctx context.Context) ([]string, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Twitch.Watchlist, nil
}

// SetLiveChannel changes the channel that live notifications are sent to.
func (r *ConfigRepository) SetLiveChannel(ctx context.Context, channelID string) error {
	_, err := r.store.Update(ctx, func(doc *datalayer.Document) error {
		doc.Twitch.ChannelID = channelID
		return nil
	})
	return err
}

// SetLiveMessage changes the announcement template. The mention target is
// prepended in the "{mention}! {message}" layout.
func (r *ConfigRepository) SetLiveMessage(ctx context.Context, message, mention string) (string, error) {
	full := message
	if mention != "" {
		full = fmt.Sprintf("%s! %s", mention, message)
	}
	_, err := r.store.Update(ctx, func(doc *datalayer.Document) error {
		doc.Twitch.LiveMsg = full
		return nil
	})
	if err != nil {
		return "An error occurred when changing the message.", err
	}
	return fmt.Sprintf("Your new message has been set.\nNew Message = %s", full), nil
}

// SaveAppToken persists a refreshed Twitch app access token and its expiry.
func (r *ConfigRepository) SaveAppToken(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.store.Update(ctx, func(doc *datalayer.Document) error {
		doc.Twitch.AccessToken = token
		doc.Twitch.ExpireDate = expiresAt.Unix()
		return nil
	})
	return err
}
