package processor

import (
	"time"

	"github.com/nguyentantai21042004/votxt/internal/config"
	"github.com/nguyentantai21042004/votxt/internal/logger"
	"github.com/nguyentantai21042004/votxt/internal/summarizer"
	"github.com/nguyentantai21042004/votxt/internal/transcriber"
)

type implProcessor struct {
	cfg         *config.Config
	model       transcriber.ModelSize
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	logger      logger.Logger
	now         func() time.Time
}

// New creates a new Processor instance. The model size comes from
// cfg.Whisper.Model, which Validate has already checked.
func New(cfg *config.Config, tr transcriber.Transcriber, sum summarizer.Summarizer, log logger.Logger) (Processor, error) {
	model, err := transcriber.ParseModelSize(cfg.Whisper.Model)
	if err != nil {
		return nil, err
	}

	return &implProcessor{
		cfg:         cfg,
		model:       model,
		transcriber: tr,
		summarizer:  sum,
		logger:      log,
		now:         time.Now,
	}, nil
}
