package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/providers"
)

// Studio owns the image-generation stage. Failures are soft: the pipeline
// continues without an image rather than aborting the run.
type Studio struct {
	adapter   providers.ImageAdapter
	enhancers string
	logger    *slog.Logger
}

func New(cfg config.ImageConfig, logger *slog.Logger) (*Studio, error) {
	if cfg.Provider == "" {
		return nil, fmt.Errorf("media studio image provider is required")
	}

	adapter, err := providers.NewImage(cfg.Provider, cfg, providers.Deps{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to load image adapter: %w", err)
	}

	return &Studio{
		adapter:   adapter,
		enhancers: cfg.QualityEnhancers,
		logger:    logger,
	}, nil
}

// CreateVisual renders an image for the prompt and returns its local path,
// or "" when no image was produced. An empty prompt skips the adapter
// entirely so no paid API call is wasted on guaranteed-useless input.
func (s *Studio) CreateVisual(ctx context.Context, prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		s.logger.Info("Empty image prompt, skipping image generation")
		return ""
	}

	path, err := s.adapter.Generate(ctx, prompt, s.enhancers)
	if err != nil {
		s.logger.Error("Image generation failed", "error", err)
		return ""
	}
	if path == "" {
		s.logger.Warn("Image adapter produced no image, continuing without one")
	}

	return path
}
