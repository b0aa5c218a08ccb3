package recorder

import (
	"context"
	"time"
)

// State is the recording session state.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StatePaused    State = "paused"
	StateStopped   State = "stopped"
)

// Controller drives one recording session. Invalid actions for the
// current state are no-ops.
type Controller interface {
	// Start begins or resumes recording and blocks running the capture
	// loop until the session is paused, saved, capped, cancelled or the
	// device fails.
	Start(ctx context.Context) error

	// Pause stops capture after the in-flight block.
	Pause(ctx context.Context)

	// Save persists the buffered audio as WAV, resets the session and hands
	// the file to the handler. It returns "" when there is nothing to save.
	// Save must not be called from the goroutine running Start.
	Save(ctx context.Context) (string, error)

	State() State
	Elapsed() time.Duration
	Samples() int
}

// Handler processes a saved recording.
type Handler func(ctx context.Context, audioPath string) error
