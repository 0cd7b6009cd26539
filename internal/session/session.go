// Package session defines the per-run session record and its persistence.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Run status values stored in the run history.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunSession describes a single invocation of the workload envelope.
// It is created at process start and threaded through to the cleanup
// step; there is no package-level start-time state.
type RunSession struct {
	ID      string
	Name    string
	LogPath string
	Start   time.Time
	End     time.Time
}

// NewRunSession creates a session with a fresh ID, the given name and log
// path, and Start set to now.
func NewRunSession(name, logPath string) *RunSession {
	return &RunSession{
		ID:      uuid.NewString(),
		Name:    name,
		LogPath: logPath,
		Start:   time.Now(),
	}
}

// Finish records the session end time.
func (s *RunSession) Finish() {
	s.End = time.Now()
}

// Duration returns End - Start rounded to the nearest millisecond.
// Zero if the session has not finished.
func (s *RunSession) Duration() time.Duration {
	if s.End.IsZero() {
		return 0
	}
	return s.End.Sub(s.Start).Round(time.Millisecond)
}

// Seconds returns the duration as fractional seconds, suitable for
// printing with three decimal places.
func (s *RunSession) Seconds() float64 {
	return s.Duration().Seconds()
}
