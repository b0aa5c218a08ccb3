package audio

import (
	"errors"
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
)

const (
	bitDepth     = 16
	wavFormatPCM = 1
	monoChannels = 1
	maxInt16     = 32767
)

// WriteWAV persists w as 16-bit mono PCM. Samples outside [-1, 1] are clamped.
func WriteWAV(path string, w Waveform) error {
	if w.SampleRate <= 0 {
		return fmt.Errorf("write wav: invalid sample rate %d", w.SampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, w.SampleRate, bitDepth, monoChannels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: monoChannels,
			SampleRate:  w.SampleRate,
		},
		Data:           make([]int, len(w.Samples)),
		SourceBitDepth: bitDepth,
	}
	for i, s := range w.Samples {
		if s > 1 {
			s = 1
		}
		if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * maxInt16)
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// ReadWAV decodes a PCM WAV file into a mono Waveform. Multi-channel input is
// reduced to its first channel.
func ReadWAV(path string) (Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return Waveform{}, apperr.New(apperr.Input, "open wav", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Waveform{}, apperr.Newf(apperr.Input, "read wav", "%s is not a valid wav file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Waveform{}, apperr.New(apperr.Input, "decode wav", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 {
		return Waveform{}, apperr.New(apperr.Input, "decode wav", errors.New("missing format"))
	}

	depth := int(dec.BitDepth)
	if depth <= 0 {
		depth = bitDepth
	}
	scale := float32(int64(1) << uint(depth-1))

	channels := buf.Format.NumChannels
	samples := make([]float32, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		samples = append(samples, float32(buf.Data[i])/scale)
	}

	return Waveform{Samples: samples, SampleRate: int(dec.SampleRate)}, nil
}

// WAVInfo describes a PCM WAV header.
type WAVInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// ProbeWAV reads only the header of a WAV file.
func ProbeWAV(path string) (WAVInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, apperr.New(apperr.Input, "open wav", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return WAVInfo{}, apperr.Newf(apperr.Input, "probe wav", "%s is not a valid wav file", path)
	}

	return WAVInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}, nil
}
