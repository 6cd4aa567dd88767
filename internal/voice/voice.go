// Package voice defines the voice-capture collaborator used by the
// conversation engine. Real transcription is out of scope; Scripted replays
// canned transcripts so the capture flow can be exercised end to end.
package voice

import (
	"errors"
	"sync"

	"oceandash/internal/logging"
)

// ErrNotStarted is returned by Stop when no capture is active.
var ErrNotStarted = errors.New("voice capture not started")

// Capture starts and stops audio capture. Stop returns the transcript of
// the captured audio, which may be empty.
type Capture interface {
	Start() error
	Stop() (string, error)
}

// Disabled is a Capture that never produces a transcript.
type Disabled struct{}

// Start does nothing.
func (Disabled) Start() error { return nil }

// Stop returns an empty transcript.
func (Disabled) Stop() (string, error) { return "", nil }

// Scripted replays transcripts in order, one per Start/Stop cycle, and
// returns an empty transcript once they run out.
type Scripted struct {
	mu          sync.Mutex
	transcripts []string
	next        int
	active      bool
}

// NewScripted creates a Scripted capture over transcripts.
func NewScripted(transcripts ...string) *Scripted {
	return &Scripted{transcripts: append([]string(nil), transcripts...)}
}

// Start begins a capture.
func (s *Scripted) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	logging.Voice("capture started")
	return nil
}

// Stop ends the capture and returns the next scripted transcript.
func (s *Scripted) Stop() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return "", ErrNotStarted
	}
	s.active = false

	if s.next >= len(s.transcripts) {
		logging.Voice("capture stopped, no transcript left")
		return "", nil
	}
	text := s.transcripts[s.next]
	s.next++
	logging.Voice("capture stopped, transcript %d/%d", s.next, len(s.transcripts))
	return text, nil
}

// Active reports whether a capture is in progress.
func (s *Scripted) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
