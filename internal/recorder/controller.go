package recorder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/looplab/fsm"

	"github.com/nguyentantai21042004/votxt/internal/audio"
)

// Start implements Controller.
func (c *implController) Start(ctx context.Context) error {
	c.mu.Lock()

	for {
		if state := State(c.fsm.Current()); state == StateRecording || state == StateStopped {
			c.mu.Unlock()
			c.logger.Debug(ctx, "Start ignored in state %s", state)
			return nil
		}
		if c.loopDone == nil {
			break
		}
		// A paused loop may still be finishing its last block.
		done := c.loopDone
		c.mu.Unlock()
		<-done
		c.mu.Lock()
	}

	event := evStart
	if State(c.fsm.Current()) == StatePaused {
		if c.rec.LimitReached() {
			c.mu.Unlock()
			c.logger.Info(ctx, "Maximum duration of %s reached, save the recording", c.rec.Max())
			return nil
		}
		event = evResume
	}

	if !c.transition(ctx, event) {
		c.mu.Unlock()
		return nil
	}
	c.rec.Anchor()

	done := make(chan struct{})
	c.loopDone = done
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loopDone = nil
		close(done)
		c.mu.Unlock()
	}()

	if event == evResume {
		c.logger.Info(ctx, "Resumed recording at %ds", int(c.rec.Elapsed().Seconds()))
	} else {
		c.logger.Info(ctx, "Recording started (max %s)", c.rec.Max())
	}

	return c.captureLoop(ctx)
}

// captureLoop records blocks while the session stays in recording.
func (c *implController) captureLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			c.fire(ctx, evPause)
			return err
		}

		reached, err := c.rec.CaptureBlock(ctx)
		if err != nil {
			c.fire(ctx, evPause)
			return fmt.Errorf("record: %w", err)
		}

		c.logger.Debug(ctx, "Recording: %ds", int(c.rec.Elapsed().Seconds()))

		c.mu.Lock()
		recording := State(c.fsm.Current()) == StateRecording
		if recording && reached {
			c.transition(ctx, evLimit)
		}
		c.mu.Unlock()

		if !recording {
			return nil
		}
		if reached {
			c.logger.Info(ctx, "Maximum duration of %s reached, recording stopped", c.rec.Max())
			return nil
		}
	}
}

// Pause implements Controller.
func (c *implController) Pause(ctx context.Context) {
	if c.fire(ctx, evPause) {
		c.logger.Info(ctx, "Recording paused at %ds", int(c.rec.Elapsed().Seconds()))
	}
}

// Save implements Controller.
func (c *implController) Save(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.rec.Samples() == 0 || !c.fsm.Can(evSave) {
		c.mu.Unlock()
		c.logger.Debug(ctx, "Save ignored: state %s, %d samples", c.fsm.Current(), c.rec.Samples())
		return "", nil
	}
	if !c.transition(ctx, evSave) {
		c.mu.Unlock()
		return "", nil
	}
	done := c.loopDone
	c.mu.Unlock()

	if done != nil {
		<-done
	}

	path, err := c.persist()
	if err != nil {
		// Keep the audio so the save can be retried.
		c.mu.Lock()
		c.fsm.SetState(string(StatePaused))
		c.mu.Unlock()
		return "", fmt.Errorf("save recording: %w", err)
	}

	duration := c.rec.Waveform().Duration()
	c.mu.Lock()
	c.rec.Reset()
	c.transition(ctx, evReset)
	c.mu.Unlock()

	c.logger.Info(ctx, "Saved recording (%s): %s", duration.Round(time.Second), path)

	if c.handler != nil {
		if err := c.handler(ctx, path); err != nil {
			return path, fmt.Errorf("process recording: %w", err)
		}
	}

	return path, nil
}

func (c *implController) persist() (string, error) {
	f, err := os.CreateTemp(c.tempDir, "recording-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	f.Close()

	if err := audio.WriteWAV(path, c.rec.Waveform()); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// State implements Controller.
func (c *implController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State(c.fsm.Current())
}

// Elapsed implements Controller.
func (c *implController) Elapsed() time.Duration {
	return c.rec.Elapsed()
}

// Samples implements Controller.
func (c *implController) Samples() int {
	return c.rec.Samples()
}

// fire runs event under the lock.
func (c *implController) fire(ctx context.Context, event string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transition(ctx, event)
}

// transition runs event and reports whether the state changed. Events that
// are invalid in the current state are ignored. Callers hold c.mu.
// Cancellation of ctx ends capture but must not block bookkeeping, so the
// fsm never sees it.
func (c *implController) transition(ctx context.Context, event string) bool {
	err := c.fsm.Event(context.WithoutCancel(ctx), event)
	if err == nil {
		return true
	}

	var invalid fsm.InvalidEventError
	if errors.As(err, &invalid) {
		c.logger.Debug(ctx, "Ignoring %s in state %s", event, invalid.State)
		return false
	}

	c.logger.Warn(ctx, "Session transition %s failed: %v", event, err)
	return false
}
