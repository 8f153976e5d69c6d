package twitch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elysium-discord/elysium-bot/internal/repository"
	"github.com/jonboulle/clockwork"
)

// TokenExchanger is the credential side of the Helix client: one client
// credentials grant plus swapping the active token.
type TokenExchanger interface {
	RequestAppToken(ctx context.Context) (string, time.Duration, error)
	SetAppToken(token string)
}

// expiryBuffer is shaved off the reported token lifetime so the bot never
// runs right up against the real expiry.
const expiryBuffer = time.Minute

// TokenRefresher keeps the persisted app access token fresh. It only hits
// the credential endpoint once the stored expiry timestamp has passed.
type TokenRefresher struct {
	repo      *repository.ConfigRepository
	exchanger TokenExchanger
	clock     clockwork.Clock
}

func NewTokenRefresher(repo *repository.ConfigRepository, exchanger TokenExchanger, clock clockwork.Clock) *TokenRefresher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenRefresher{repo: repo, exchanger: exchanger, clock: clock}
}

// RefreshIfExpired checks the stored expiry and regenerates the token when
// it has passed. The new token is durable before it is put into use.
func (r *TokenRefresher) RefreshIfExpired(ctx context.Context) error {
	doc, err := r.repo.Document(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config for token refresh: %w", err)
	}

	now := r.clock.Now()
	if doc.Twitch.AccessToken != "" && now.Unix() < doc.Twitch.ExpireDate {
		r.exchanger.SetAppToken(doc.Twitch.AccessToken)
		return nil
	}

	token, ttl, err := r.exchanger.RequestAppToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to regenerate app token: %w", err)
	}

	expiresAt := now.Add(ttl - expiryBuffer)
	if err := r.repo.SaveAppToken(ctx, token, expiresAt); err != nil {
		return fmt.Errorf("failed to persist app token: %w", err)
	}

	r.exchanger.SetAppToken(token)
	slog.Info("twitch app token regenerated", "expires_at", expiresAt)
	return nil
}
