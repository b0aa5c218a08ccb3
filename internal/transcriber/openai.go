package transcriber

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
	"github.com/nguyentantai21042004/votxt/internal/config"
	"github.com/nguyentantai21042004/votxt/internal/logger"
)

// remoteWhisper sends files to an OpenAI-compatible transcription endpoint.
// The hosted model has a single size, so the requested size is only logged.
type remoteWhisper struct {
	client   *openai.Client
	language string
	logger   logger.Logger
}

func newRemoteWhisper(cfg config.WhisperConfig, log logger.Logger) *remoteWhisper {
	r := &remoteWhisper{language: cfg.Language, logger: log}
	if cfg.APIKey == "" {
		return r
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	r.client = openai.NewClientWithConfig(clientCfg)
	return r
}

func (r *remoteWhisper) Transcribe(ctx context.Context, audioPath string, model ModelSize) (string, error) {
	if err := checkInput(audioPath); err != nil {
		return "", err
	}
	if r.client == nil {
		return "", apperr.Newf(apperr.ModelLoad, "load remote whisper", "OPENAI_API_KEY is not set")
	}

	r.logger.Info(ctx, "Transcribing %s with %s (requested size %s)", describe(audioPath), openai.Whisper1, model)

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatJSON,
	}
	if r.language != "" && r.language != "auto" {
		req.Language = r.language
	}

	resp, err := r.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("remote transcribe: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	r.logger.Info(ctx, "Transcription completed: %d words", len(strings.Fields(text)))
	return text, nil
}
