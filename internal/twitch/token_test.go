package twitch_test

import (
	"context"
	"testing"
	"time"

	"github.com/elysium-discord/elysium-bot/internal/datalayer"
	"github.com/elysium-discord/elysium-bot/internal/repository"
	"github.com/elysium-discord/elysium-bot/internal/twitch"
	"github.com/jonboulle/clockwork"
)

type memoryStore struct {
	doc datalayer.Document
}

func (m *memoryStore) Load(ctx context.Context) (datalayer.Document, error) {
	return m.doc, nil
}

func (m *memoryStore) Update(ctx context.Context, mutate func(*datalayer.Document) error) (datalayer.Document, error) {
	doc := m.doc
	if err := mutate(&doc); err != nil {
		return datalayer.Document{}, err
	}
	m.doc = doc
	return doc, nil
}

type fakeExchanger struct {
	token    string
	ttl      time.Duration
	requests int
	active   string
}

func (f *fakeExchanger) RequestAppToken(ctx context.Context) (string, time.Duration, error) {
	f.requests++
	return f.token, f.ttl, nil
}

func (f *fakeExchanger) SetAppToken(token string) {
	f.active = token
}

func TestRefreshIfExpiredNoopWhileValid(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	store := &memoryStore{doc: datalayer.Document{
		Twitch: datalayer.TwitchSection{
			AccessToken: "current-token",
			ExpireDate:  now.Add(time.Hour).Unix(),
		},
	}}
	exchanger := &fakeExchanger{token: "new-token", ttl: 4 * time.Hour}
	refresher := twitch.NewTokenRefresher(repository.NewConfigRepository(store), exchanger, clock)

	if err := refresher.RefreshIfExpired(context.Background()); err != nil {
		t.Fatalf("RefreshIfExpired() returned error: %v", err)
	}
	if exchanger.requests != 0 {
		t.Errorf("token was regenerated while still valid: %d requests", exchanger.requests)
	}
	if exchanger.active != "current-token" {
		t.Errorf("active token = %q, want the stored one", exchanger.active)
	}
}

func TestRefreshIfExpiredRegenerates(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	store := &memoryStore{doc: datalayer.Document{
		Twitch: datalayer.TwitchSection{
			AccessToken: "stale-token",
			ExpireDate:  now.Add(-time.Minute).Unix(),
		},
	}}
	exchanger := &fakeExchanger{token: "new-token", ttl: 4 * time.Hour}
	refresher := twitch.NewTokenRefresher(repository.NewConfigRepository(store), exchanger, clock)

	if err := refresher.RefreshIfExpired(context.Background()); err != nil {
		t.Fatalf("RefreshIfExpired() returned error: %v", err)
	}
	if exchanger.requests != 1 {
		t.Fatalf("requests = %d, want 1", exchanger.requests)
	}
	if exchanger.active != "new-token" {
		t.Errorf("active token = %q, want new-token", exchanger.active)
	}
	if store.doc.Twitch.AccessToken != "new-token" {
		t.Errorf("persisted token = %q, want new-token", store.doc.Twitch.AccessToken)
	}

	// Expiry is the reported lifetime minus a safety buffer.
	wantExpiry := now.Add(4*time.Hour - time.Minute).Unix()
	if store.doc.Twitch.ExpireDate != wantExpiry {
		t.Errorf("persisted expiry = %d, want %d", store.doc.Twitch.ExpireDate, wantExpiry)
	}
}

func TestRefreshIfExpiredEmptyToken(t *testing.T) {
	// A document with no token at all refreshes immediately regardless of
	// the expiry field.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	store := &memoryStore{doc: datalayer.Document{
		Twitch: datalayer.TwitchSection{ExpireDate: now.Add(time.Hour).Unix()},
	}}
	exchanger := &fakeExchanger{token: "new-token", ttl: time.Hour}
	refresher := twitch.NewTokenRefresher(repository.NewConfigRepository(store), exchanger, clock)

	if err := refresher.RefreshIfExpired(context.Background()); err != nil {
		t.Fatalf("RefreshIfExpired() returned error: %v", err)
	}
	if exchanger.requests != 1 {
		t.Errorf("requests = %d, want 1", exchanger.requests)
	}
}
