package audio

import (
	"context"
	"time"
)

// Source produces audio one block at a time.
type Source interface {
	// CaptureBlock blocks until d worth of samples has been captured.
	// An in-flight block is never interrupted.
	CaptureBlock(ctx context.Context, d time.Duration) ([]float32, error)

	// Close releases the device.
	Close() error
}
