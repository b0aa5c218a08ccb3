package audio

import (
	"sync"
	"time"
)

// DefaultSampleRate is the capture and persistence rate expected by Whisper.
const DefaultSampleRate = 16000

// Waveform is a mono sample sequence plus its sample rate.
type Waveform struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the playback length of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// Buffer accumulates captured samples for one recording session.
type Buffer struct {
	mu         sync.RWMutex
	samples    []float32
	sampleRate int
}

// NewBuffer creates an empty buffer at sampleRate. Zero selects DefaultSampleRate.
func NewBuffer(sampleRate int) *Buffer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Buffer{
		samples:    make([]float32, 0, sampleRate*10), // ~10 seconds
		sampleRate: sampleRate,
	}
}

// Append adds a block of samples.
func (b *Buffer) Append(block []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = append(b.samples, block...)
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}

// Waveform returns a copy of the samples with the buffer's sample rate.
func (b *Buffer) Waveform() Waveform {
	b.mu.RLock()
	defer b.mu.RUnlock()
	samples := make([]float32, len(b.samples))
	copy(samples, b.samples)
	return Waveform{Samples: samples, SampleRate: b.sampleRate}
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// SampleRate returns the fixed sample rate.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// Duration returns how much audio the buffer holds.
func (b *Buffer) Duration() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return time.Duration(len(b.samples)) * time.Second / time.Duration(b.sampleRate)
}
