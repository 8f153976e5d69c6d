// Package voice owns the Discord voice connection for a guild and streams
// transcoded audio into it.
package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/elysium-discord/elysium-bot/internal/opus"
)

// Session is the voice connection for one guild. At most one stream plays
// at a time; Start reports completion exactly once per stream.
type Session struct {
	discord    *discordgo.Session
	guildID    string
	ffmpegPath string

	mu     sync.Mutex
	conn   *discordgo.VoiceConnection
	stream *opus.Stream
	cancel context.CancelFunc
}

func NewSession(discord *discordgo.Session, guildID, ffmpegPath string) *Session {
	return &Session{
		discord:    discord,
		guildID:    guildID,
		ffmpegPath: ffmpegPath,
	}
}

// Join connects to a voice channel. No-op when already connected there.
func (s *Session) Join(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil && s.conn.ChannelID == channelID {
		return nil
	}

	conn, err := s.discord.ChannelVoiceJoin(s.guildID, channelID, false, true)
	if err != nil {
		return fmt.Errorf("unable to join the voice channel: %w", err)
	}
	s.conn = conn
	return nil
}

func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

func (s *Session) ChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ""
	}
	return s.conn.ChannelID
}

// Leave halts any active stream and disconnects.
func (s *Session) Leave() error {
	s.mu.Lock()
	conn := s.conn
	stream := s.stream
	cancel := s.cancel
	s.conn = nil
	s.stream = nil
	s.cancel = nil
	s.mu.Unlock()

	if stream != nil {
		stream.Stop()
	}
	if cancel != nil {
		cancel()
	}
	if conn == nil {
		return nil
	}

	if err := conn.Speaking(false); err != nil {
		slog.Warn("failed to stop speaking", "error", err)
	}
	if err := conn.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// ListenerCount counts the non-bot members currently in the connected voice
// channel.
func (s *Session) ListenerCount() (int, error) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return 0, errors.New("not connected to a voice channel")
	}

	guild, err := s.discord.State.Guild(s.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to read guild state: %w", err)
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != conn.ChannelID || vs.UserID == s.discord.State.User.ID {
			continue
		}
		member, err := s.discord.State.Member(s.guildID, vs.UserID)
		if err != nil || member.User == nil || member.User.Bot {
			continue
		}
		count++
	}
	return count, nil
}

// Start begins streaming the given audio URL. onDone fires exactly once
// when the stream ends, whether it finished, was stopped, or errored; a
// stream halted by StopStream or Leave reports nil.
func (s *Session) Start(ctx context.Context, streamURL string, onDone func(error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return errors.New("not connected to a voice channel")
	}

	streamCtx, cancel := context.WithCancel(ctx)
	source, err := opus.Transcode(streamCtx, s.ffmpegPath, streamURL)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to start transcoding: %w", err)
	}

	if err := s.conn.Speaking(true); err != nil {
		source.Close()
		cancel()
		return fmt.Errorf("error setting speaking state to 'true': %w", err)
	}

	stream := opus.NewStream()
	s.stream = stream
	s.cancel = cancel
	conn := s.conn

	var once sync.Once
	go func() {
		err := stream.Send(opus.NewFrameReader(source), conn.OpusSend)
		source.Close()
		cancel()

		if err := conn.Speaking(false); err != nil {
			slog.Warn("failed to stop speaking", "error", err)
		}

		s.mu.Lock()
		if s.stream == stream {
			s.stream = nil
			s.cancel = nil
		}
		s.mu.Unlock()

		if errors.Is(err, opus.ErrStopped) {
			err = nil
		}
		once.Do(func() { onDone(err) })
	}()

	return nil
}

// StopStream halts the current stream, if any. The stream's completion
// callback still fires.
func (s *Session) StopStream() {
	s.mu.Lock()
	stream := s.stream
	s.mu.Unlock()
	if stream != nil {
		stream.Stop()
	}
}

func (s *Session) Pause() {
	s.mu.Lock()
	stream := s.stream
	s.mu.Unlock()
	if stream != nil {
		stream.Pause()
	}
}

func (s *Session) Resume() {
	s.mu.Lock()
	stream := s.stream
	s.mu.Unlock()
	if stream != nil {
		stream.Resume()
	}
}
