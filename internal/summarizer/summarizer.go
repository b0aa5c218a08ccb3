package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
)

const (
	// DefaultMinWords is the transcript length that triggers summarization.
	DefaultMinWords  = 90
	DefaultMinLength = 90
	DefaultMaxLength = 220
)

const summaryPrompt = `Summarize the following transcript of a voice recording.

Requirements:
- Write between %d and %d words
- Keep the speaker's facts, names and numbers exactly as spoken
- Plain prose, no headings, no bullet points, no preamble

Transcript:
---
%s
---`

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ShouldSummarize reports whether text is long enough to summarize.
func ShouldSummarize(text string, minWords int) bool {
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return WordCount(text) >= minWords
}

// Summarize asks the backend for a summary within the configured length
// range. Output beyond the maximum is cut at the word limit.
func (s *implSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.Newf(apperr.Input, "summarize", "empty transcript")
	}

	s.logger.Info(ctx, "Summarizing %d words with %s", WordCount(text), s.gen.name())

	summary, err := s.gen.generate(ctx, fmt.Sprintf(summaryPrompt, s.minLength, s.maxLength, text))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("summarize: empty response from %s", s.gen.name())
	}

	if n := WordCount(summary); n > s.maxLength {
		s.logger.Debug(ctx, "Summary has %d words, truncating to %d", n, s.maxLength)
		summary = truncateWords(summary, s.maxLength)
	} else if n < s.minLength {
		s.logger.Warn(ctx, "Summary has %d words, below the %d word target", n, s.minLength)
	}

	return summary, nil
}

func truncateWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}
	return strings.Join(words[:max], " ")
}
