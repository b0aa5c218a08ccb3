package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
)

func TestBufferAppendAndClear(t *testing.T) {
	b := NewBuffer(0)
	if b.SampleRate() != DefaultSampleRate {
		t.Fatalf("SampleRate() = %d, want %d", b.SampleRate(), DefaultSampleRate)
	}

	b.Append(make([]float32, 16000))
	b.Append(make([]float32, 8000))

	if b.Len() != 24000 {
		t.Errorf("Len() = %d, want 24000", b.Len())
	}
	if b.Duration() != 1500*time.Millisecond {
		t.Errorf("Duration() = %s, want 1.5s", b.Duration())
	}

	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", b.Len())
	}
}

func TestBufferWaveformIsCopy(t *testing.T) {
	b := NewBuffer(16000)
	b.Append([]float32{0.1, 0.2, 0.3})

	w := b.Waveform()
	w.Samples[0] = 0.9

	if got := b.Waveform().Samples[0]; got != 0.1 {
		t.Errorf("buffer sample mutated through Waveform copy: %v", got)
	}
	if w.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", w.SampleRate)
	}
}

func TestWAVRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		samples    int
		sampleRate int
	}{
		{"one second at 16k", 16000, 16000},
		{"five seconds at 16k", 80000, 16000},
		{"odd length at 8k", 12345, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Waveform{Samples: make([]float32, tt.samples), SampleRate: tt.sampleRate}
			for i := range in.Samples {
				in.Samples[i] = float32(math.Sin(float64(i) / 10))
			}

			path := filepath.Join(t.TempDir(), "rec.wav")
			if err := WriteWAV(path, in); err != nil {
				t.Fatalf("WriteWAV() error = %v", err)
			}

			out, err := ReadWAV(path)
			if err != nil {
				t.Fatalf("ReadWAV() error = %v", err)
			}

			if len(out.Samples) != tt.samples {
				t.Errorf("sample count = %d, want %d", len(out.Samples), tt.samples)
			}
			if out.SampleRate != tt.sampleRate {
				t.Errorf("sample rate = %d, want %d", out.SampleRate, tt.sampleRate)
			}
			for i := 0; i < len(out.Samples) && i < 100; i++ {
				if d := math.Abs(float64(out.Samples[i] - in.Samples[i])); d > 1e-3 {
					t.Fatalf("sample %d = %v, want ~%v", i, out.Samples[i], in.Samples[i])
				}
			}
		})
	}
}

func TestWriteWAVClampsSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := WriteWAV(path, Waveform{Samples: []float32{2, -2}, SampleRate: 16000}); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}

	out, err := ReadWAV(path)
	if err != nil {
		t.Fatalf("ReadWAV() error = %v", err)
	}
	if out.Samples[0] > 1 || out.Samples[1] < -1 {
		t.Errorf("samples not clamped: %v", out.Samples)
	}
}

func TestReadWAVInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(path, []byte("not a riff file"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadWAV(path)
	if !apperr.IsKind(err, apperr.Input) {
		t.Errorf("ReadWAV() error = %v, want input error", err)
	}

	_, err = ReadWAV(filepath.Join(t.TempDir(), "missing.wav"))
	if !apperr.IsKind(err, apperr.Input) {
		t.Errorf("ReadWAV(missing) error = %v, want input error", err)
	}
}

func TestWaveformDuration(t *testing.T) {
	w := Waveform{Samples: make([]float32, 80000), SampleRate: 16000}
	if w.Duration() != 5*time.Second {
		t.Errorf("Duration() = %s, want 5s", w.Duration())
	}
	if (Waveform{}).Duration() != 0 {
		t.Error("zero waveform should have zero duration")
	}
}

func TestProbeWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.wav")
	if err := WriteWAV(path, Waveform{Samples: make([]float32, 4000), SampleRate: 8000}); err != nil {
		t.Fatal(err)
	}

	info, err := ProbeWAV(path)
	if err != nil {
		t.Fatalf("ProbeWAV() error = %v", err)
	}
	want := WAVInfo{SampleRate: 8000, Channels: 1, BitDepth: 16}
	if info != want {
		t.Errorf("ProbeWAV() = %+v, want %+v", info, want)
	}
}
