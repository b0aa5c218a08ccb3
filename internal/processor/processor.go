package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/votxt/internal/artifact"
	"github.com/nguyentantai21042004/votxt/internal/summarizer"
)

// Process transcribes audioPath, stores the transcript, then summarizes it
// if it has at least summary.min_words words.
func (p *implProcessor) Process(ctx context.Context, audioPath string) (*Result, error) {
	startTime := p.now()

	p.logger.Info(ctx, "Processing %s with whisper %s", filepath.Base(audioPath), p.model)

	text, err := p.transcriber.Transcribe(ctx, audioPath, p.model)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	dir, err := artifact.NewJobDir(p.cfg.Paths.Output, startTime)
	if err != nil {
		return nil, err
	}

	res := &Result{Transcript: text, Dir: dir}

	res.TranscriptPath, err = artifact.Write(dir, artifact.TranscriptName, "Transcribed Text", text)
	if err != nil {
		if res.TranscriptPath == "" {
			return nil, fmt.Errorf("store transcript: %w", err)
		}
		p.logger.Warn(ctx, "Transcript docx not written: %v", err)
	}

	p.archiveAudio(ctx, audioPath, dir)

	if !summarizer.ShouldSummarize(text, p.cfg.Summary.MinWords) {
		p.logger.Info(ctx, "Transcript has %d words, skipping summary", summarizer.WordCount(text))
		res.TooShort = true
		return res, nil
	}

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		p.logger.Error(ctx, "Summarization failed: %v", err)
		res.SummaryErr = err
		return res, nil
	}
	res.Summary = summary

	res.SummaryPath, err = artifact.Write(dir, artifact.SummaryName, "Summary", summary)
	if err != nil {
		p.logger.Warn(ctx, "Summary not fully written: %v", err)
	}

	p.logger.Info(ctx, "Processed %s in %s: %s", filepath.Base(audioPath), p.now().Sub(startTime), dir)
	return res, nil
}
