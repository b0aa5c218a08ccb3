package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
	"github.com/nguyentantai21042004/votxt/internal/audio"
	"github.com/nguyentantai21042004/votxt/internal/config"
	"github.com/nguyentantai21042004/votxt/internal/logger"
	"github.com/nguyentantai21042004/votxt/pkg/executor"
)

type whisperCPP struct {
	cfg      config.WhisperConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// Transcribe runs whisper-cli over audioPath. Non-WAV input, or WAV that is
// not 16kHz mono, is converted with ffmpeg first.
func (w *whisperCPP) Transcribe(ctx context.Context, audioPath string, model ModelSize) (string, error) {
	if err := checkInput(audioPath); err != nil {
		return "", err
	}

	modelPath, binary, err := w.loadModel(model)
	if err != nil {
		return "", err
	}

	wavPath, converted, err := w.prepareAudio(ctx, audioPath)
	if err != nil {
		return "", err
	}
	if converted {
		defer w.cleanupTempFile(ctx, wavPath)
	}

	w.logger.Info(ctx, "Transcribing %s with whisper %s (%d threads)", describe(audioPath), model, w.cfg.Threads)

	// -nt: no timestamps
	// -np: no progress prints on stdout
	args := []string{
		"-m", modelPath,
		"-f", wavPath,
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-nt",
		"-np",
	}

	out, err := w.executor.Execute(ctx, binary, args...)
	if err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	text := cleanTranscript(out)
	w.logger.Info(ctx, "Transcription completed: %d words", len(strings.Fields(text)))
	return text, nil
}

// loadModel resolves the weights file and the whisper binary.
func (w *whisperCPP) loadModel(model ModelSize) (string, string, error) {
	if _, err := ParseModelSize(string(model)); err != nil {
		return "", "", apperr.New(apperr.ModelLoad, "load whisper model", err)
	}

	modelPath := model.PathIn(w.cfg.ModelsDir)
	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", apperr.Newf(apperr.ModelLoad, "load whisper model", "weights not found: %s", modelPath)
		}
		return "", "", apperr.New(apperr.ModelLoad, "load whisper model", err)
	}

	binary, err := w.executor.LookPath(w.cfg.BinaryPath)
	if err != nil {
		return "", "", apperr.New(apperr.ModelLoad, "load whisper binary", err)
	}

	return modelPath, binary, nil
}

// prepareAudio returns a 16kHz mono WAV path for whisper.cpp and whether it
// is a temporary conversion the caller must remove.
func (w *whisperCPP) prepareAudio(ctx context.Context, audioPath string) (string, bool, error) {
	if strings.ToLower(filepath.Ext(audioPath)) == ".wav" {
		info, err := audio.ProbeWAV(audioPath)
		if err != nil {
			return "", false, err
		}
		if info.SampleRate == audio.DefaultSampleRate && info.Channels == 1 {
			return audioPath, false, nil
		}
		w.logger.Debug(ctx, "Resampling %s: %d Hz, %d channels", audioPath, info.SampleRate, info.Channels)
	}

	f, err := os.CreateTemp(w.tempDir, "whisper-*.wav")
	if err != nil {
		return "", false, fmt.Errorf("create temp wav: %w", err)
	}
	wavPath := f.Name()
	f.Close()

	// -ar 16000: Whisper's native rate
	// -ac 1: mono
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", strconv.Itoa(audio.DefaultSampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.FFmpegPath, args...); err != nil {
		os.Remove(wavPath)
		return "", false, apperr.New(apperr.Input, "convert audio", err)
	}

	w.logger.Debug(ctx, "Converted %s -> %s", audioPath, wavPath)
	return wavPath, true, nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (w *whisperCPP) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		w.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
