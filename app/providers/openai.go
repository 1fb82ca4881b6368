package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

func init() {
	RegisterText("openai", newOpenAIText)
}

type openAIText struct {
	client      openai.Client
	model       string
	temperature float64
	normalizer  *content.Normalizer
	logger      *slog.Logger
}

func newOpenAIText(cfg config.ProcessorConfig, deps Deps) (TextAdapter, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errMissingKey("OPENAI_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}),
	)

	return &openAIText{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		normalizer:  content.NewNormalizer(deps.Logger),
		logger:      deps.Logger,
	}, nil
}

func (a *openAIText) GenerateContent(ctx context.Context, rawInput, systemPrompt string) (content.Bundle, error) {
	userMessage := fmt.Sprintf("Process the following raw material and respond in JSON format:\n%s", rawInput)

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
		Temperature: openai.Float(a.temperature),
	})
	if err != nil {
		if ctx.Err() != nil {
			return content.Bundle{}, ctx.Err()
		}
		reason := classifyOpenAIError(err)
		a.logger.Error("OpenAI request failed", "model", a.model, "reason", reason)
		return content.ErrorBundle(reason), nil
	}

	if len(resp.Choices) == 0 {
		a.logger.Error("OpenAI response contained no choices", "model", a.model)
		return content.ErrorBundle("empty response from provider"), nil
	}

	return a.normalizer.Normalize(resp.Choices[0].Message.Content).Bundle, nil
}

func classifyOpenAIError(err error) string {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("remote rejected request: status %d", apiErr.StatusCode)
	}
	return classifyTransportError(err)
}
