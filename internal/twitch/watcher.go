package twitch

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// StreamInfo is the slice of a Helix stream record the bot cares about.
type StreamInfo struct {
	UserLogin   string
	UserName    string
	Title       string
	GameName    string
	ViewerCount int
	StartedAt   time.Time
}

// API is the read surface of the streaming-status service: batch login->id
// resolution and batch id->live-status lookup. StreamsByUserID keys its
// result by login.
type API interface {
	UsersByLogin(ctx context.Context, logins []string) (map[string]string, error)
	StreamsByUserID(ctx context.Context, userIDs []string) (map[string]StreamInfo, error)
}

// Watcher tracks online/offline transitions for a set of watched streamers
// and reports each new broadcast session exactly once. The dedup key is the
// session start timestamp alone: a notification fires when a streamer has no
// recorded start, or reports one strictly later than the recorded value.
//
// The tracking state is owned by the Watcher, so independent watchers can
// coexist. A Watcher is not safe for concurrent polls; the runner serializes
// them on a single ticker.
type Watcher struct {
	api API

	// lastStart maps login -> start timestamp of the last notified
	// session. nil means the streamer was last seen offline.
	lastStart map[string]*time.Time
}

func NewWatcher(api API) *Watcher {
	return &Watcher{
		api:       api,
		lastStart: make(map[string]*time.Time),
	}
}

// Poll resolves the live status of every watched streamer and returns the
// stream records that represent new broadcast sessions, in watchlist order.
//
// Lookup failures are soft: Poll returns the error with no notifications and
// leaves the tracking state untouched, so a flaky API call can never mark
// everyone offline and cause duplicate notifications later.
func (w *Watcher) Poll(ctx context.Context, watchlist []string) ([]StreamInfo, error) {
	if len(watchlist) == 0 {
		return nil, nil
	}

	logins := make([]string, 0, len(watchlist))
	for _, name := range watchlist {
		logins = append(logins, strings.ToLower(name))
	}

	users, err := w.api.UsersByLogin(ctx, logins)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for _, id := range users {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		userIDs = append(userIDs, id)
	}

	streams := map[string]StreamInfo{}
	if len(userIDs) > 0 {
		streams, err = w.api.StreamsByUserID(ctx, userIDs)
		if err != nil {
			return nil, err
		}
	}

	var notifications []StreamInfo
	for _, login := range logins {
		if _, tracked := w.lastStart[login]; !tracked {
			w.lastStart[login] = nil
		}

		stream, online := streams[login]
		if !online {
			// Offline, or silently gone from the results. Clearing the
			// recorded start means the next appearance is always fresh.
			w.lastStart[login] = nil
			continue
		}

		if stream.StartedAt.IsZero() {
			slog.Warn("stream record has no start timestamp, skipping this cycle", "login", login)
			continue
		}

		last := w.lastStart[login]
		if last == nil || stream.StartedAt.After(*last) {
			notifications = append(notifications, stream)
			startedAt := stream.StartedAt
			w.lastStart[login] = &startedAt
		}
	}

	w.prune(logins)
	return notifications, nil
}

// prune drops tracking entries for streamers no longer on the watchlist.
func (w *Watcher) prune(logins []string) {
	current := make(map[string]struct{}, len(logins))
	for _, login := range logins {
		current[login] = struct{}{}
	}
	for login := range w.lastStart {
		if _, ok := current[login]; !ok {
			delete(w.lastStart, login)
		}
	}
}
