package recorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nguyentantai21042004/votxt/internal/audio"
)

// Options configures a Recorder.
type Options struct {
	// Block is the capture granularity. Pause and the max cap are only
	// checked between blocks.
	Block time.Duration
	// Max caps the elapsed recording time.
	Max time.Duration
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Recorder captures fixed-size blocks into a Buffer and derives elapsed
// time as now minus anchor, clamped to Max.
type Recorder struct {
	source audio.Source
	buffer *audio.Buffer
	block  time.Duration
	max    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	anchor  time.Time
	elapsed time.Duration
}

// NewRecorder creates a Recorder appending to buf.
func NewRecorder(src audio.Source, buf *audio.Buffer, opts Options) *Recorder {
	if opts.Block <= 0 {
		opts.Block = time.Second
	}
	if opts.Max <= 0 {
		opts.Max = 180 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Recorder{
		source: src,
		buffer: buf,
		block:  opts.Block,
		max:    opts.Max,
		now:    opts.Now,
	}
}

// Anchor sets the start reference to now minus the elapsed time, so a
// resumed session keeps counting from where it paused.
func (r *Recorder) Anchor() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.anchor = r.now().Add(-r.elapsed)
}

// CaptureBlock records one block, appends it and recomputes elapsed.
// It reports whether the max duration has been reached.
func (r *Recorder) CaptureBlock(ctx context.Context) (bool, error) {
	samples, err := r.source.CaptureBlock(ctx, r.block)
	if err != nil {
		return false, fmt.Errorf("capture block: %w", err)
	}
	r.buffer.Append(samples)

	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := r.now().Sub(r.anchor)
	if elapsed > r.max {
		elapsed = r.max
	}
	if elapsed > r.elapsed {
		r.elapsed = elapsed
	}

	return r.elapsed >= r.max, nil
}

// Elapsed returns the last computed elapsed time.
func (r *Recorder) Elapsed() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.elapsed
}

// LimitReached reports whether elapsed has hit the cap.
func (r *Recorder) LimitReached() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.elapsed >= r.max
}

// Max returns the configured cap.
func (r *Recorder) Max() time.Duration {
	return r.max
}

// Samples returns the number of buffered samples.
func (r *Recorder) Samples() int {
	return r.buffer.Len()
}

// Waveform returns the buffered audio.
func (r *Recorder) Waveform() audio.Waveform {
	return r.buffer.Waveform()
}

// Reset clears the buffer and the elapsed counter.
func (r *Recorder) Reset() {
	r.buffer.Clear()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.elapsed = 0
	r.anchor = time.Time{}
}
