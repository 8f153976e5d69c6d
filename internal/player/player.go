// Package player serializes playback of queued audio tracks in one voice
// session and manages automatic teardown.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Track is one queued audio request: an opaque playable reference plus the
// title shown to users. Tracks have no identity beyond queue position.
type Track struct {
	StreamURL string
	Title     string
}

// Resolver turns a free-text search into a single playable track.
type Resolver interface {
	Resolve(ctx context.Context, query string) (Track, error)
}

// Voice is the per-guild voice transport the player drives.
type Voice interface {
	Join(channelID string) error
	Leave() error
	Connected() bool
	ChannelID() string
	ListenerCount() (int, error)
	Start(ctx context.Context, streamURL string, onDone func(error)) error
	StopStream()
	Pause()
	Resume()
}

// Notifier posts playback updates to the guild's text channel.
type Notifier interface {
	Notify(text string)
}

var (
	ErrWrongChannel   = errors.New("must be in the same voice channel as the bot")
	ErrNotConnected   = errors.New("not connected to a voice channel")
	ErrNothingPlaying = errors.New("nothing is currently playing")
	ErrNotPaused      = errors.New("audio is not paused")
	ErrAlreadyPaused  = errors.New("audio is already paused")
)

const (
	// DefaultIdleTimeout is how long the player stays connected with an
	// empty queue and nothing playing.
	DefaultIdleTimeout = 30 * time.Second

	// DefaultWatchdogInterval is the cadence of the empty-channel check.
	DefaultWatchdogInterval = 30 * time.Second
)

// Options tune a Player; zero values pick the defaults.
type Options struct {
	IdleTimeout      time.Duration
	WatchdogInterval time.Duration
	Clock            clockwork.Clock
}

// Player owns the track queue and timers for one voice session. Playback
// advances through a completion continuation that fires exactly once per
// track, whether it ended naturally, was skipped, or errored.
type Player struct {
	voice    Voice
	resolver Resolver
	notify   Notifier
	clock    clockwork.Clock

	idleTimeout      time.Duration
	watchdogInterval time.Duration

	mu        sync.Mutex
	queue     []Track
	current   *Track
	paused    bool
	idleTimer clockwork.Timer
	watchdog  clockwork.Timer

	// generation invalidates in-flight completion callbacks after an
	// explicit stop or teardown.
	generation uint64
}

func New(voice Voice, resolver Resolver, notify Notifier, opts Options) *Player {
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.WatchdogInterval == 0 {
		opts.WatchdogInterval = DefaultWatchdogInterval
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Player{
		voice:            voice,
		resolver:         resolver,
		notify:           notify,
		clock:            opts.Clock,
		idleTimeout:      opts.IdleTimeout,
		watchdogInterval: opts.WatchdogInterval,
	}
}

// Enqueue resolves a search request and appends the result to the queue,
// connecting to the requester's voice channel first if needed. It returns
// the resolved title. New activity cancels a pending idle disconnect and
// re-arms the empty-channel watchdog.
func (p *Player) Enqueue(ctx context.Context, requesterChannelID, query string) (string, error) {
	p.mu.Lock()
	if p.voice.Connected() && p.voice.ChannelID() != requesterChannelID {
		p.mu.Unlock()
		return "", ErrWrongChannel
	}
	p.mu.Unlock()

	// Resolution may be slow; keep it off the lock so playback control
	// stays responsive while the search runs.
	track, err := p.resolver.Resolve(ctx, query)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.voice.Connected() {
		if err := p.voice.Join(requesterChannelID); err != nil {
			return "", fmt.Errorf("failed to connect to voice channel: %w", err)
		}
	}

	p.queue = append(p.queue, track)
	p.stopIdleTimerLocked()
	p.armWatchdogLocked()

	if p.current == nil {
		p.playNextLocked(ctx)
	}
	return track.Title, nil
}

// playNextLocked advances playback. Empty queue: announce and arm the idle
// timer. Otherwise pop the head and start streaming; a start failure is
// reported per-track and the loop immediately tries the next one, so an
// unplayable queue drains one-by-one.
func (p *Player) playNextLocked(ctx context.Context) {
	for {
		if len(p.queue) == 0 {
			p.notify.Notify("Queue is empty!")
			p.armIdleTimerLocked()
			return
		}

		track := p.queue[0]
		p.queue = p.queue[1:]

		gen := p.generation
		err := p.voice.Start(ctx, track.StreamURL, func(err error) {
			p.onTrackDone(gen, err)
		})
		if err != nil {
			p.notify.Notify(fmt.Sprintf("Error playing audio: **%s**", track.Title))
			slog.Warn("failed to start track", "title", track.Title, "error", err)
			continue
		}

		p.current = &track
		p.paused = false
		p.notify.Notify(fmt.Sprintf("Now Playing: **%s**", track.Title))
		return
	}
}

func (p *Player) onTrackDone(gen uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		// The session was stopped or torn down while this track was in
		// flight; the queue no longer belongs to this callback.
		return
	}

	p.current = nil
	p.paused = false
	if err != nil {
		p.notify.Notify(fmt.Sprintf("Playback error: %s", err))
	}
	p.playNextLocked(context.Background())
}

// Skip halts the current track; the completion continuation advances the
// queue.
func (p *Player) Skip() error {
	p.mu.Lock()
	if !p.voice.Connected() {
		p.mu.Unlock()
		return ErrNotConnected
	}
	if p.current == nil {
		p.mu.Unlock()
		return ErrNothingPlaying
	}
	p.mu.Unlock()

	p.voice.StopStream()
	return nil
}

func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.voice.Connected() {
		return ErrNotConnected
	}
	if p.current == nil {
		return ErrNothingPlaying
	}
	if p.paused {
		return ErrAlreadyPaused
	}
	p.paused = true
	p.voice.Pause()
	return nil
}

func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.voice.Connected() {
		return ErrNotConnected
	}
	if !p.paused {
		return ErrNotPaused
	}
	p.paused = false
	p.voice.Resume()
	return nil
}

// Stop clears the queue, halts playback, disconnects, and cancels both
// timers unconditionally.
func (p *Player) Stop() error {
	p.mu.Lock()
	if !p.voice.Connected() {
		p.mu.Unlock()
		return ErrNotConnected
	}
	p.teardownLocked()
	p.mu.Unlock()

	if err := p.voice.Leave(); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// Queue returns the titles of the pending tracks in play order.
func (p *Player) Queue() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	titles := make([]string, 0, len(p.queue))
	for _, t := range p.queue {
		titles = append(titles, t.Title)
	}
	return titles
}

// NowPlaying returns the current track title, if any.
func (p *Player) NowPlaying() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return "", false
	}
	return p.current.Title, true
}

func (p *Player) teardownLocked() {
	p.queue = nil
	p.current = nil
	p.paused = false
	p.generation++
	p.stopIdleTimerLocked()
	p.stopWatchdogLocked()
}

func (p *Player) armIdleTimerLocked() {
	p.stopIdleTimerLocked()
	p.idleTimer = p.clock.AfterFunc(p.idleTimeout, p.onIdleTimeout)
}

// onIdleTimeout re-validates before disconnecting: activity that arrived
// while the delay was pending must win the race.
func (p *Player) onIdleTimeout() {
	p.mu.Lock()
	if p.current != nil || len(p.queue) > 0 || !p.voice.Connected() {
		p.mu.Unlock()
		return
	}
	p.teardownLocked()
	p.mu.Unlock()

	p.notify.Notify("Disconnecting due to inactivity...")
	if err := p.voice.Leave(); err != nil {
		slog.Warn("idle disconnect failed", "error", err)
	}
}

func (p *Player) armWatchdogLocked() {
	p.stopWatchdogLocked()
	p.watchdog = p.clock.AfterFunc(p.watchdogInterval, p.onWatchdog)
}

// onWatchdog disconnects once no non-bot members remain in the channel;
// otherwise it reschedules itself.
func (p *Player) onWatchdog() {
	p.mu.Lock()
	if !p.voice.Connected() {
		p.mu.Unlock()
		return
	}

	count, err := p.voice.ListenerCount()
	if err != nil || count > 0 {
		if err != nil {
			slog.Warn("failed to count voice channel members", "error", err)
		}
		p.armWatchdogLocked()
		p.mu.Unlock()
		return
	}

	p.teardownLocked()
	p.mu.Unlock()

	p.notify.Notify("Disconnecting because no one is in the voice channel...")
	if err := p.voice.Leave(); err != nil {
		slog.Warn("empty channel disconnect failed", "error", err)
	}
}

func (p *Player) stopIdleTimerLocked() {
	if p.idleTimer != nil {
		p.idleTimer.Stop()
		p.idleTimer = nil
	}
}

func (p *Player) stopWatchdogLocked() {
	if p.watchdog != nil {
		p.watchdog.Stop()
		p.watchdog = nil
	}
}
