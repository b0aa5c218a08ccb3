package summarizer

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/votxt/internal/apperr"
)

type openaiGenerator struct {
	client *openai.Client
	model  string
}

func (o *openaiGenerator) name() string {
	return o.model
}

func (o *openaiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	if o.client == nil {
		return "", apperr.Newf(apperr.ModelLoad, "load openai", "OPENAI_API_KEY is not set")
	}

	seed := 0
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		// A zero temperature is dropped by omitempty.
		Temperature: math.SmallestNonzeroFloat32,
		Seed:        &seed,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", o.model)
	}

	return resp.Choices[0].Message.Content, nil
}
