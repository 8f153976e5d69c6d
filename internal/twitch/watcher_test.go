package twitch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elysium-discord/elysium-bot/internal/twitch"
	"github.com/google/go-cmp/cmp"
)

type fakeAPI struct {
	users      map[string]string
	usersErr   error
	streams    map[string]twitch.StreamInfo
	streamsErr error

	usersCalls   int
	streamsCalls int
}

func (f *fakeAPI) UsersByLogin(ctx context.Context, logins []string) (map[string]string, error) {
	f.usersCalls++
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func (f *fakeAPI) StreamsByUserID(ctx context.Context, userIDs []string) (map[string]twitch.StreamInfo, error) {
	f.streamsCalls++
	if f.streamsErr != nil {
		return nil, f.streamsErr
	}
	return f.streams, nil
}

func liveAt(login string, startedAt time.Time) twitch.StreamInfo {
	return twitch.StreamInfo{
		UserLogin:   login,
		UserName:    login,
		Title:       login + " stream",
		StartedAt:   startedAt,
		ViewerCount: 1,
	}
}

func TestPollEmptyWatchlist(t *testing.T) {
	api := &fakeAPI{}
	w := twitch.NewWatcher(api)

	got, err := w.Poll(context.Background(), nil)
	if err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Poll() = %v, want nil", got)
	}
	if api.usersCalls != 0 {
		t.Errorf("empty watchlist must not hit the API, got %d calls", api.usersCalls)
	}
}

func TestPollNotifiesOncePerSession(t *testing.T) {
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		users:   map[string]string{"alice": "1"},
		streams: map[string]twitch.StreamInfo{"alice": liveAt("alice", start)},
	}
	w := twitch.NewWatcher(api)
	watchlist := []string{"alice"}

	first, err := w.Poll(context.Background(), watchlist)
	if err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}
	if len(first) != 1 || first[0].UserLogin != "alice" {
		t.Fatalf("first Poll() = %v, want one alice notification", first)
	}

	// Same session-start timestamp on subsequent polls: no repeats.
	for i := 0; i < 3; i++ {
		again, err := w.Poll(context.Background(), watchlist)
		if err != nil {
			t.Fatalf("Poll() returned error: %v", err)
		}
		if len(again) != 0 {
			t.Fatalf("Poll() #%d = %v, want no repeat notification", i+2, again)
		}
	}
}

func TestPollFreshSessionAfterOffline(t *testing.T) {
	firstStart := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		users:   map[string]string{"alice": "1"},
		streams: map[string]twitch.StreamInfo{"alice": liveAt("alice", firstStart)},
	}
	w := twitch.NewWatcher(api)
	watchlist := []string{"alice"}

	if _, err := w.Poll(context.Background(), watchlist); err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}

	// Goes offline: tracking resets.
	api.streams = map[string]twitch.StreamInfo{}
	if got, _ := w.Poll(context.Background(), watchlist); len(got) != 0 {
		t.Fatalf("offline Poll() = %v, want none", got)
	}

	// Back online with a strictly newer start: exactly one notification.
	secondStart := firstStart.Add(2 * time.Hour)
	api.streams = map[string]twitch.StreamInfo{"alice": liveAt("alice", secondStart)}
	got, err := w.Poll(context.Background(), watchlist)
	if err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}
	want := []twitch.StreamInfo{liveAt("alice", secondStart)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Poll() mismatch (-want +got):\n%s", diff)
	}
}

func TestPollOfflineResetSameTimestamp(t *testing.T) {
	// A streamer that disappears and reappears with the identical start
	// timestamp is treated as fresh, because offline clears the recorded
	// start and a nil record always notifies.
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		users:   map[string]string{"alice": "1"},
		streams: map[string]twitch.StreamInfo{"alice": liveAt("alice", start)},
	}
	w := twitch.NewWatcher(api)
	watchlist := []string{"alice"}

	if _, err := w.Poll(context.Background(), watchlist); err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}

	api.streams = map[string]twitch.StreamInfo{}
	if _, err := w.Poll(context.Background(), watchlist); err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}

	api.streams = map[string]twitch.StreamInfo{"alice": liveAt("alice", start)}
	got, err := w.Poll(context.Background(), watchlist)
	if err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("reappearance with equal timestamp after offline reset: got %d notifications, want 1", len(got))
	}
}

func TestPollLookupFailureLeavesStateUntouched(t *testing.T) {
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		users:   map[string]string{"alice": "1"},
		streams: map[string]twitch.StreamInfo{"alice": liveAt("alice", start)},
	}
	w := twitch.NewWatcher(api)
	watchlist := []string{"alice"}

	if _, err := w.Poll(context.Background(), watchlist); err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}

	// A failed poll must not mark anyone offline.
	api.streamsErr = errors.New("helix is down")
	if got, err := w.Poll(context.Background(), watchlist); err == nil || len(got) != 0 {
		t.Fatalf("failing Poll() = (%v, %v), want error and no notifications", got, err)
	}

	// Recovery with the same session: still no duplicate notification.
	api.streamsErr = nil
	got, err := w.Poll(context.Background(), watchlist)
	if err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Poll() after recovery = %v, want no duplicate", got)
	}
}

func TestPollUsersFailureSkipsStreams(t *testing.T) {
	api := &fakeAPI{usersErr: errors.New("helix is down")}
	w := twitch.NewWatcher(api)

	if _, err := w.Poll(context.Background(), []string{"alice"}); err == nil {
		t.Fatal("Poll() expected error, got nil")
	}
	if api.streamsCalls != 0 {
		t.Errorf("streams lookup ran after users failure: %d calls", api.streamsCalls)
	}
}

func TestPollSkipsZeroStartTimestamp(t *testing.T) {
	api := &fakeAPI{
		users: map[string]string{"alice": "1"},
		streams: map[string]twitch.StreamInfo{
			"alice": {UserLogin: "alice"}, // no StartedAt
		},
	}
	w := twitch.NewWatcher(api)

	got, err := w.Poll(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Poll() = %v, want record without start timestamp skipped", got)
	}

	// Once the record carries a timestamp it notifies normally.
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	api.streams = map[string]twitch.StreamInfo{"alice": liveAt("alice", start)}
	got, err = w.Poll(context.Background(), []string{"alice"})
	if err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Poll() = %v, want one notification", got)
	}
}

func TestPollWatchlistOrder(t *testing.T) {
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		users: map[string]string{"alice": "1", "bob": "2", "carol": "3"},
		streams: map[string]twitch.StreamInfo{
			"carol": liveAt("carol", start),
			"alice": liveAt("alice", start),
			"bob":   liveAt("bob", start),
		},
	}
	w := twitch.NewWatcher(api)

	got, err := w.Poll(context.Background(), []string{"bob", "carol", "alice"})
	if err != nil {
		t.Fatalf("Poll() returned error: %v", err)
	}

	var order []string
	for _, n := range got {
		order = append(order, n.UserLogin)
	}
	if diff := cmp.Diff([]string{"bob", "carol", "alice"}, order); diff != "" {
		t.Errorf("notification order mismatch (-want +got):\n%s", diff)
	}
}
