package summarizer

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/votxt/internal/config"
	"github.com/nguyentantai21042004/votxt/internal/logger"
)

type implSummarizer struct {
	gen       generator
	minLength int
	maxLength int
	logger    logger.Logger
}

// New creates the Summarizer selected by cfg.Backend.
func New(cfg config.SummaryConfig, log logger.Logger) (Summarizer, error) {
	var gen generator
	switch cfg.Backend {
	case "", "gemini":
		gen = &geminiGenerator{
			apiKeys: cfg.APIKeys,
			model:   cfg.Model,
			logger:  log,
		}
	case "openai":
		og := &openaiGenerator{model: cfg.Model}
		if len(cfg.APIKeys) > 0 {
			clientCfg := openai.DefaultConfig(cfg.APIKeys[0])
			if cfg.BaseURL != "" {
				clientCfg.BaseURL = cfg.BaseURL
			}
			og.client = openai.NewClientWithConfig(clientCfg)
		}
		gen = og
	default:
		return nil, fmt.Errorf("unknown summary backend %q", cfg.Backend)
	}

	return newWithGenerator(gen, cfg.MinLength, cfg.MaxLength, log), nil
}

func newWithGenerator(gen generator, minLength, maxLength int, log logger.Logger) *implSummarizer {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	if maxLength < minLength {
		maxLength = DefaultMaxLength
	}
	return &implSummarizer{
		gen:       gen,
		minLength: minLength,
		maxLength: maxLength,
		logger:    log,
	}
}
