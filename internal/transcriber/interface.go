package transcriber

import "context"

// Transcriber converts an audio file to text.
type Transcriber interface {
	// Transcribe loads the model of the given size, runs it over the file at
	// audioPath and returns the recognized text. It blocks until inference
	// finishes and never retries.
	Transcribe(ctx context.Context, audioPath string, model ModelSize) (string, error)
}
