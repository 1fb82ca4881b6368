package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
	"github.com/open-content-bot/contentbot/app/providers"
)

// Processor owns the text-generation stage. Configuration is validated
// eagerly at construction: a misconfiguration aborts before any network
// call is attempted.
type Processor struct {
	adapter      providers.TextAdapter
	systemPrompt string
	logger       *slog.Logger
}

func New(cfg config.ProcessorConfig, logger *slog.Logger) (*Processor, error) {
	if cfg.Provider == "" {
		return nil, fmt.Errorf("processor provider is required")
	}
	if cfg.SystemPrompt == "" {
		return nil, fmt.Errorf("processor system_prompt is required")
	}

	adapter, err := providers.NewText(cfg.Provider, cfg, providers.Deps{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to load text adapter: %w", err)
	}

	return &Processor{
		adapter:      adapter,
		systemPrompt: cfg.SystemPrompt,
		logger:       logger,
	}, nil
}

// Process runs the raw input through the selected text adapter. Empty input
// short-circuits to an empty bundle: an empty feed is not exceptional.
func (p *Processor) Process(ctx context.Context, rawInput string) (content.Bundle, error) {
	if strings.TrimSpace(rawInput) == "" {
		p.logger.Warn("No raw input provided to processor, returning empty bundle")
		return content.Bundle{Tags: []string{}}, nil
	}

	return p.adapter.GenerateContent(ctx, rawInput, p.systemPrompt)
}
