package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
	"github.com/nguyentantai21042004/votxt/internal/config"
	"github.com/nguyentantai21042004/votxt/internal/logger"
	"github.com/nguyentantai21042004/votxt/internal/transcriber"
)

type fakeTranscriber struct {
	text  string
	err   error
	model transcriber.ModelSize
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string, model transcriber.ModelSize) (string, error) {
	f.model = model
	return f.text, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.summary, f.err
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func newTestProcessor(t *testing.T, tr *fakeTranscriber, sum *fakeSummarizer) (Processor, string) {
	t.Helper()

	out := t.TempDir()
	cfg := &config.Config{
		Whisper: config.WhisperConfig{Model: "small"},
		Summary: config.SummaryConfig{MinWords: 90},
		Paths:   config.PathsConfig{Output: out},
	}

	p, err := New(cfg, tr, sum, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p, out
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessSummaryGate(t *testing.T) {
	tests := []struct {
		name        string
		words       int
		wantSummary bool
	}{
		{"50 words is too short", 50, false},
		{"89 words is too short", 89, false},
		{"90 words is summarized", 90, true},
		{"150 words is summarized", 150, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTranscriber{text: words(tt.words)}
			sum := &fakeSummarizer{summary: words(120)}
			p, _ := newTestProcessor(t, tr, sum)

			res, err := p.Process(context.Background(), writeAudio(t))
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			if got := sum.calls == 1; got != tt.wantSummary {
				t.Errorf("summarizer called = %v, want %v", got, tt.wantSummary)
			}
			if res.TooShort == tt.wantSummary {
				t.Errorf("TooShort = %v, want %v", res.TooShort, !tt.wantSummary)
			}
			if tt.wantSummary && res.SummaryPath == "" {
				t.Error("SummaryPath is empty")
			}
			if tr.model != transcriber.Small {
				t.Errorf("model = %s, want small", tr.model)
			}
		})
	}
}

func TestProcessWritesArtifacts(t *testing.T) {
	tr := &fakeTranscriber{text: words(100)}
	sum := &fakeSummarizer{summary: "A short summary."}
	p, out := newTestProcessor(t, tr, sum)

	res, err := p.Process(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if filepath.Dir(res.Dir) != out {
		t.Errorf("Dir = %s, want under %s", res.Dir, out)
	}
	for _, name := range []string{"transcription.txt", "transcription.docx", "summary.txt", "summary.docx", "audio.wav"} {
		if _, err := os.Stat(filepath.Join(res.Dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	data, err := os.ReadFile(res.SummaryPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "A short summary." {
		t.Errorf("summary.txt = %q", data)
	}
}

func TestProcessSummaryFailureKeepsTranscript(t *testing.T) {
	tr := &fakeTranscriber{text: words(120)}
	sum := &fakeSummarizer{err: apperr.Newf(apperr.ModelLoad, "summarize", "no api keys")}
	p, _ := newTestProcessor(t, tr, sum)

	res, err := p.Process(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !apperr.IsKind(res.SummaryErr, apperr.ModelLoad) {
		t.Errorf("SummaryErr = %v, want model load error", res.SummaryErr)
	}
	if res.Transcript == "" || res.TranscriptPath == "" {
		t.Error("transcript lost after summary failure")
	}
	if res.SummaryPath != "" {
		t.Errorf("SummaryPath = %s, want empty", res.SummaryPath)
	}
}

func TestProcessTranscriptionFailure(t *testing.T) {
	tr := &fakeTranscriber{err: apperr.Newf(apperr.Input, "transcribe", "unsupported format")}
	sum := &fakeSummarizer{}
	p, out := newTestProcessor(t, tr, sum)

	_, err := p.Process(context.Background(), writeAudio(t))
	if !apperr.IsKind(err, apperr.Input) {
		t.Fatalf("Process() error = %v, want input error", err)
	}
	if sum.calls != 0 {
		t.Error("summarizer called after transcription failure")
	}

	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("output has %d entries, want none", len(entries))
	}
}

func TestNewRejectsUnknownModel(t *testing.T) {
	cfg := &config.Config{Whisper: config.WhisperConfig{Model: "huge"}}
	_, err := New(cfg, &fakeTranscriber{}, &fakeSummarizer{}, logger.Nop())
	if err == nil {
		t.Fatal("New() should reject an unknown model size")
	}
}

func TestProcessArchivesAudio(t *testing.T) {
	tests := []struct {
		name       string
		tempName   string
		wantSource bool
	}{
		{"upload is copied", "", true},
		{"temp recording is moved", "recording-1.wav", false},
		{"other file in temp is copied", "upload.wav", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			cfg := &config.Config{
				Whisper: config.WhisperConfig{Model: "base"},
				Summary: config.SummaryConfig{MinWords: 90},
				Paths:   config.PathsConfig{Output: t.TempDir(), Temp: tempDir},
			}
			p, err := New(cfg, &fakeTranscriber{text: words(10)}, &fakeSummarizer{}, logger.Nop())
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			src := writeAudio(t)
			if tt.tempName != "" {
				src = filepath.Join(tempDir, tt.tempName)
				if err := os.WriteFile(src, []byte("RIFF"), 0644); err != nil {
					t.Fatal(err)
				}
			}

			res, err := p.Process(context.Background(), src)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			if _, err := os.Stat(filepath.Join(res.Dir, "audio.wav")); err != nil {
				t.Errorf("audio not archived: %v", err)
			}
			_, err = os.Stat(src)
			if got := err == nil; got != tt.wantSource {
				t.Errorf("source exists = %v, want %v", got, tt.wantSource)
			}
		})
	}
}

func TestInDir(t *testing.T) {
	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/tmp/votxt/recording-1.wav", "/tmp/votxt", true},
		{"/tmp/votxt/sub/a.wav", "/tmp/votxt", true},
		{"/tmp/votxt-other/a.wav", "/tmp/votxt", false},
		{"/home/user/a.wav", "/tmp/votxt", false},
		{"/tmp/votxt/a.wav", "", false},
	}

	for _, tt := range tests {
		if got := inDir(tt.path, tt.dir); got != tt.want {
			t.Errorf("inDir(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}
