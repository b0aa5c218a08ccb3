package summarizer

import "context"

// Summarizer condenses a transcript. Callers gate it with ShouldSummarize.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// generator runs one deterministic completion against a model backend.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
	name() string
}
