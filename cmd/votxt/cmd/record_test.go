package cmd

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/votxt/internal/recorder"
)

type fakeController struct {
	mu      sync.Mutex
	state   recorder.State
	started chan struct{}
	saves   int
	pauses  int
}

func newFakeController() *fakeController {
	return &fakeController{state: recorder.StateIdle, started: make(chan struct{}, 4)}
}

func (f *fakeController) Start(ctx context.Context) error {
	f.mu.Lock()
	f.state = recorder.StateRecording
	f.mu.Unlock()
	f.started <- struct{}{}
	return nil
}

func (f *fakeController) Pause(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	if f.state == recorder.StateRecording {
		f.state = recorder.StatePaused
	}
}

func (f *fakeController) Save(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.state = recorder.StateIdle
	return "", nil
}

func (f *fakeController) State() recorder.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeController) Elapsed() time.Duration { return 3 * time.Second }
func (f *fakeController) Samples() int           { return 0 }

func TestConsoleKeys(t *testing.T) {
	ctx := context.Background()
	ctrl := newFakeController()
	c := newConsole(ctrl)

	if done, _ := c.handle(ctx, "r"); done {
		t.Fatal("r should not exit")
	}
	select {
	case <-ctrl.started:
	case <-time.After(time.Second):
		t.Fatal("r did not start recording")
	}

	c.handle(ctx, "p")
	if ctrl.State() != recorder.StatePaused {
		t.Errorf("state after p = %s, want paused", ctrl.State())
	}

	c.handle(ctx, "c")
	select {
	case <-ctrl.started:
	case <-time.After(time.Second):
		t.Fatal("c did not resume recording")
	}

	c.handle(ctx, "s")
	if ctrl.saves != 1 {
		t.Errorf("saves = %d, want 1", ctrl.saves)
	}

	done, err := c.handle(ctx, "q")
	if !done || err != nil {
		t.Errorf("q = (%v, %v), want (true, nil)", done, err)
	}
}

func TestConsoleStartWhileRecordingIsIgnored(t *testing.T) {
	ctx := context.Background()
	ctrl := newFakeController()
	ctrl.state = recorder.StateRecording
	c := newConsole(ctrl)

	c.handle(ctx, "r")
	select {
	case <-ctrl.started:
		t.Error("Start called while already recording")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConsoleResumeRequiresPause(t *testing.T) {
	ctx := context.Background()
	ctrl := newFakeController()
	c := newConsole(ctrl)

	c.handle(ctx, "c")
	select {
	case <-ctrl.started:
		t.Error("c started a recording from idle")
	case <-time.After(50 * time.Millisecond):
	}
	if ctrl.State() != recorder.StateIdle {
		t.Errorf("state = %s, want idle", ctrl.State())
	}
}
