package processor

import "context"

// TooShortMessage is reported instead of a summary when the transcript is
// below the summarization threshold.
const TooShortMessage = "Text is too short to summarize."

// Processor turns one audio file into a transcript and, when long enough,
// a summary.
type Processor interface {
	Process(ctx context.Context, audioPath string) (*Result, error)
}

// Result is what one Process call produced. SummaryErr holds a failed
// summarization; the transcript stays valid in that case.
type Result struct {
	Transcript     string
	Summary        string
	TooShort       bool
	Dir            string
	TranscriptPath string
	SummaryPath    string
	SummaryErr     error
}
