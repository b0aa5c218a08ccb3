package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/votxt/internal/config"
	"github.com/nguyentantai21042004/votxt/internal/logger"
	"github.com/nguyentantai21042004/votxt/pkg/executor"
)

// New creates the Transcriber selected by cfg.Whisper.Backend.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Whisper.Backend {
	case "", "whispercpp":
		return &whisperCPP{
			cfg:      cfg.Whisper,
			tempDir:  cfg.Paths.Temp,
			executor: exec,
			logger:   log,
		}, nil
	case "openai":
		return newRemoteWhisper(cfg.Whisper, log), nil
	default:
		return nil, fmt.Errorf("unknown whisper backend %q", cfg.Whisper.Backend)
	}
}
