package datalayer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/elysium-discord/elysium-bot/internal/datalayer"
	"github.com/google/go-cmp/cmp"
)

func writeTestDocument(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to seed config file: %v", err)
	}
	return path
}

func TestFileStoreLoad(t *testing.T) {
	path := writeTestDocument(t, `{
		"bot": {"dev_id": "1", "stream_manager_id": "2"},
		"moderation": {"mod_channel": "3", "block_words": ["spoiler"]},
		"twitch": {"channel_id": "4", "watchlist": ["alice", "bob"]}
	}`)

	store := datalayer.NewFileStore(path)
	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	want := datalayer.Document{
		Bot:        datalayer.BotSection{DevID: "1", StreamManagerID: "2"},
		Moderation: datalayer.ModerationSection{ModChannel: "3", BlockWords: []string{"spoiler"}},
		Twitch:     datalayer.TwitchSection{ChannelID: "4", Watchlist: []string{"alice", "bob"}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := datalayer.NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestFileStoreUpdatePersists(t *testing.T) {
	path := writeTestDocument(t, `{"twitch": {"watchlist": []}}`)
	store := datalayer.NewFileStore(path)

	_, err := store.Update(context.Background(), func(doc *datalayer.Document) error {
		doc.Twitch.Watchlist = append(doc.Twitch.Watchlist, "alice")
		return nil
	})
	if err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}

	// A fresh store against the same path must see the mutation.
	reread, err := datalayer.NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() after update returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"alice"}, reread.Twitch.Watchlist); diff != "" {
		t.Errorf("watchlist mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreUpdateMutationError(t *testing.T) {
	path := writeTestDocument(t, `{"twitch": {"watchlist": ["alice"]}}`)
	store := datalayer.NewFileStore(path)

	_, err := store.Update(context.Background(), func(doc *datalayer.Document) error {
		doc.Twitch.Watchlist = nil
		return os.ErrInvalid
	})
	if err == nil {
		t.Fatal("Update() expected mutation error, got nil")
	}

	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"alice"}, doc.Twitch.Watchlist); diff != "" {
		t.Errorf("failed mutation must not persist (-want +got):\n%s", diff)
	}
}
