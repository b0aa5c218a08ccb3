package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/votxt/internal/config"
	"github.com/nguyentantai21042004/votxt/internal/logger"
	"github.com/nguyentantai21042004/votxt/internal/processor"
	"github.com/nguyentantai21042004/votxt/internal/summarizer"
	"github.com/nguyentantai21042004/votxt/internal/transcriber"
	"github.com/nguyentantai21042004/votxt/pkg/executor"
)

// app holds what every command needs once config is loaded.
type app struct {
	cfg  *config.Config
	log  logger.Logger
	proc processor.Processor
}

func newApp(ctx context.Context) (*app, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if modelFlag != "" {
		cfg.Whisper.Model = modelFlag
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--model: %w", err)
		}
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	tr, err := transcriber.New(cfg, executor.New(), log)
	if err != nil {
		return nil, err
	}
	sum, err := summarizer.New(cfg.Summary, log)
	if err != nil {
		return nil, err
	}
	proc, err := processor.New(cfg, tr, sum, log)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, "Config loaded from %s (whisper %s/%s, summary %s/%s)",
		cfgFile, cfg.Whisper.Backend, cfg.Whisper.Model, cfg.Summary.Backend, cfg.Summary.Model)

	return &app{cfg: cfg, log: log, proc: proc}, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

// printResult shows a processed file the way the console reports it.
func printResult(res *processor.Result) {
	fmt.Println()
	fmt.Println("Transcribed Text")
	fmt.Println(res.Transcript)
	fmt.Printf("Saved: %s\n", res.TranscriptPath)

	fmt.Println()
	fmt.Println("Summary")
	switch {
	case res.TooShort:
		fmt.Println(processor.TooShortMessage)
	case res.SummaryErr != nil:
		fmt.Printf("Summary unavailable: %v\n", res.SummaryErr)
	default:
		fmt.Println(res.Summary)
		fmt.Printf("Saved: %s\n", res.SummaryPath)
	}
}
