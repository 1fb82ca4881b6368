package providers

import (
	"context"
	"log/slog"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

// TextAdapter is the text-generation capability contract. Implementations
// must route raw model output through the response normalizer before
// returning, so callers can rely on a fully-shaped bundle. Remote failures
// surface as the canonical error bundle, not as errors; the error return is
// reserved for context cancellation.
type TextAdapter interface {
	GenerateContent(ctx context.Context, rawInput, systemPrompt string) (content.Bundle, error)
}

// ImageAdapter is the image-generation capability contract. An empty path
// with a nil error is the agreed soft-failure sentinel: the pipeline keeps
// advancing without an image instead of aborting the run.
type ImageAdapter interface {
	Generate(ctx context.Context, prompt, styleModifiers string) (string, error)
}

// Deps carries the shared collaborators injected into adapters at
// construction.
type Deps struct {
	Logger *slog.Logger
}

// TextFactory builds a text adapter from its scoped configuration.
// Construction errors (missing credentials etc.) are configuration errors.
type TextFactory func(cfg config.ProcessorConfig, deps Deps) (TextAdapter, error)

// ImageFactory builds an image adapter from its scoped configuration.
type ImageFactory func(cfg config.ImageConfig, deps Deps) (ImageAdapter, error)
