package recorder

import (
	"context"
	"sync"

	"github.com/looplab/fsm"

	"github.com/nguyentantai21042004/votxt/internal/logger"
)

const (
	evStart  = "start"
	evResume = "resume"
	evPause  = "pause"
	evLimit  = "limit"
	evSave   = "save"
	evReset  = "reset"
)

type implController struct {
	rec     *Recorder
	tempDir string
	handler Handler
	logger  logger.Logger

	// mu guards fsm transitions and loopDone. It is never held while a
	// block is being captured.
	mu       sync.Mutex
	fsm      *fsm.FSM
	loopDone chan struct{}
}

// New creates a Controller recording through rec. Saved files go to
// tempDir and are passed to handler, which may be nil.
func New(rec *Recorder, tempDir string, handler Handler, log logger.Logger) Controller {
	c := &implController{
		rec:     rec,
		tempDir: tempDir,
		handler: handler,
		logger:  log,
	}

	c.fsm = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: evStart, Src: []string{string(StateIdle)}, Dst: string(StateRecording)},
			{Name: evResume, Src: []string{string(StatePaused)}, Dst: string(StateRecording)},
			{Name: evPause, Src: []string{string(StateRecording)}, Dst: string(StatePaused)},
			{Name: evLimit, Src: []string{string(StateRecording)}, Dst: string(StatePaused)},
			{Name: evSave, Src: []string{string(StateRecording), string(StatePaused)}, Dst: string(StateStopped)},
			{Name: evReset, Src: []string{string(StateStopped)}, Dst: string(StateIdle)},
		},
		fsm.Callbacks{
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				c.logger.Debug(ctx, "Session %s: %s -> %s", e.Event, e.Src, e.Dst)
			},
		},
	)

	return c
}
