package opus

import (
	"errors"
	"io"
	"sync"
	"time"
)

var (
	ErrVoiceConnClosed = errors.New("voice connection send timeout")

	// ErrStopped reports that the stream was halted by Stop rather than
	// by reaching the end of the source.
	ErrStopped = errors.New("stream stopped")
)

// FrameSink is where decoded frames go; Discord's VoiceConnection.OpusSend
// channel satisfies it directly.
type FrameSink chan<- []byte

// Stream sends Opus frames to a sink with pause/resume/stop control. One
// Stream serves one track; create a fresh one per playback.
type Stream struct {
	mu      sync.Mutex
	paused  bool
	unpause chan struct{}

	stop     chan struct{}
	stopOnce sync.Once
}

func NewStream() *Stream {
	return &Stream{stop: make(chan struct{})}
}

// Pause suspends frame delivery until Resume or Stop.
func (s *Stream) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		s.paused = true
		s.unpause = make(chan struct{})
	}
}

// Resume lifts a pause. No-op when not paused.
func (s *Stream) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		s.paused = false
		close(s.unpause)
	}
}

// Stop halts the stream. Safe to call more than once.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Send reads frames from source and delivers them to the sink. It blocks
// until the source is exhausted (nil), Stop is called (ErrStopped), or the
// sink stalls for over a minute (ErrVoiceConnClosed).
func (s *Stream) Send(source *FrameReader, sink FrameSink) error {
	for {
		if err := s.waitWhilePaused(); err != nil {
			return err
		}

		frame, err := source.ReadFrame()
		if err != nil {
			if isEOF(err) {
				return nil
			}
			return err
		}

		timer := time.NewTimer(time.Minute)
		select {
		case sink <- frame:
			timer.Stop()
		case <-s.stop:
			timer.Stop()
			return ErrStopped
		case <-timer.C:
			return ErrVoiceConnClosed
		}
	}
}

func (s *Stream) waitWhilePaused() error {
	for {
		select {
		case <-s.stop:
			return ErrStopped
		default:
		}

		s.mu.Lock()
		if !s.paused {
			s.mu.Unlock()
			return nil
		}
		unpause := s.unpause
		s.mu.Unlock()

		select {
		case <-unpause:
		case <-s.stop:
			return ErrStopped
		}
	}
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
