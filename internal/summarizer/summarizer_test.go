package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
	"github.com/nguyentantai21042004/votxt/internal/config"
	"github.com/nguyentantai21042004/votxt/internal/logger"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeGenerator) name() string { return "fake" }

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = "word"
	}
	return strings.Join(w, " ")
}

func TestShouldSummarize(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		minWords int
		want     bool
	}{
		{"50 words is too short", 50, 90, false},
		{"89 words is too short", 89, 90, false},
		{"exactly 90 words", 90, 90, true},
		{"150 words", 150, 90, true},
		{"zero threshold uses default", 89, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSummarize(words(tt.words), tt.minWords); got != tt.want {
				t.Errorf("ShouldSummarize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarizeLengthRange(t *testing.T) {
	tests := []struct {
		name      string
		replyLen  int
		wantWords int
	}{
		{"within range", 120, 120},
		{"over max is truncated", 300, 220},
		{"under min is kept", 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{reply: "  " + words(tt.replyLen) + "\n"}
			s := newWithGenerator(gen, 90, 220, logger.Nop())

			summary, err := s.Summarize(context.Background(), words(150))
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if got := WordCount(summary); got != tt.wantWords {
				t.Errorf("summary has %d words, want %d", got, tt.wantWords)
			}
			if !strings.Contains(gen.prompts[0], "between 90 and 220 words") {
				t.Errorf("prompt missing length range: %q", gen.prompts[0])
			}
		})
	}
}

func TestSummarizeErrors(t *testing.T) {
	s := newWithGenerator(&fakeGenerator{reply: "ok"}, 90, 220, logger.Nop())
	if _, err := s.Summarize(context.Background(), "   "); !apperr.IsKind(err, apperr.Input) {
		t.Errorf("empty input error = %v, want input error", err)
	}

	s = newWithGenerator(&fakeGenerator{reply: "   "}, 90, 220, logger.Nop())
	if _, err := s.Summarize(context.Background(), words(100)); err == nil {
		t.Error("empty model output should be an error")
	}

	backendErr := errors.New("boom")
	s = newWithGenerator(&fakeGenerator{err: backendErr}, 90, 220, logger.Nop())
	if _, err := s.Summarize(context.Background(), words(100)); !errors.Is(err, backendErr) {
		t.Errorf("error = %v, want wrapped backend error", err)
	}
}

func TestMissingKeysIsModelLoadError(t *testing.T) {
	for _, backend := range []string{"gemini", "openai"} {
		t.Run(backend, func(t *testing.T) {
			s, err := New(config.SummaryConfig{Backend: backend, Model: "m"}, logger.Nop())
			if err != nil {
				t.Fatal(err)
			}
			_, err = s.Summarize(context.Background(), words(100))
			if !apperr.IsKind(err, apperr.ModelLoad) {
				t.Errorf("Summarize() error = %v, want model load error", err)
			}
		})
	}
}

func TestOpenAISummarize(t *testing.T) {
	var req struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": words(100)}},
			},
		})
	}))
	defer srv.Close()

	s, err := New(config.SummaryConfig{
		Backend:   "openai",
		Model:     "gpt-4o-mini",
		BaseURL:   srv.URL + "/v1",
		APIKeys:   []string{"test-key"},
		MinLength: 90,
		MaxLength: 220,
	}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}

	summary, err := s.Summarize(context.Background(), words(150))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if WordCount(summary) != 100 {
		t.Errorf("summary has %d words, want 100", WordCount(summary))
	}
	if req.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", req.Model)
	}
	if req.Temperature > 0.001 {
		t.Errorf("temperature = %v, want ~0", req.Temperature)
	}
}

func TestGeminiKeyRotation(t *testing.T) {
	g := &geminiGenerator{apiKeys: []string{"a", "b", "c"}}
	g.rotateKey()
	g.rotateKey()
	g.rotateKey()
	if g.currentKey != 0 {
		t.Errorf("currentKey = %d, want 0 after full rotation", g.currentKey)
	}
	if !isQuotaError(errors.New("Error 429: RESOURCE_EXHAUSTED")) || isQuotaError(errors.New("bad request")) {
		t.Error("isQuotaError misclassified")
	}
}
