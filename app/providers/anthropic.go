package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

func init() {
	RegisterText("anthropic", newAnthropicText)
}

type anthropicText struct {
	client      *anthropic.Client
	model       string
	temperature float64
	normalizer  *content.Normalizer
	logger      *slog.Logger
}

func newAnthropicText(cfg config.ProcessorConfig, deps Deps) (TextAdapter, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, errMissingKey("ANTHROPIC_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}),
	)

	return &anthropicText{
		client:      &client,
		model:       model,
		temperature: cfg.Temperature,
		normalizer:  content.NewNormalizer(deps.Logger),
		logger:      deps.Logger,
	}, nil
}

func (a *anthropicText) GenerateContent(ctx context.Context, rawInput, systemPrompt string) (content.Bundle, error) {
	userMessage := fmt.Sprintf("Process the following raw material and respond in JSON format:\n%s", rawInput)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)),
		},
		Temperature: anthropic.Float(a.temperature),
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return content.Bundle{}, ctx.Err()
		}
		reason := classifyAnthropicError(err)
		a.logger.Error("Anthropic request failed", "model", a.model, "reason", reason)
		return content.ErrorBundle(reason), nil
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.AsText().Text
		}
	}

	if text == "" {
		a.logger.Error("Anthropic response contained no text blocks", "model", a.model)
		return content.ErrorBundle("empty response from provider"), nil
	}

	return a.normalizer.Normalize(text).Bundle, nil
}

func classifyAnthropicError(err error) string {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("remote rejected request: status %d", apiErr.StatusCode)
	}
	return classifyTransportError(err)
}
