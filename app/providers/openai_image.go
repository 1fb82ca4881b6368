package providers

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/open-content-bot/contentbot/app/config"
)

func init() {
	RegisterImage("openai", newOpenAIImage)
}

type openAIImage struct {
	client     openai.Client
	model      string
	resolution string
	saver      *imageSaver
	logger     *slog.Logger
}

func newOpenAIImage(cfg config.ImageConfig, deps Deps) (ImageAdapter, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errMissingKey("OPENAI_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = "dall-e-3"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	)

	return &openAIImage{
		client:     client,
		model:      model,
		resolution: cfg.Resolution,
		saver:      newImageSaver(cfg.SaveDir, timeout, deps.Logger),
		logger:     deps.Logger,
	}, nil
}

func (a *openAIImage) Generate(ctx context.Context, prompt, styleModifiers string) (string, error) {
	fullPrompt := prompt
	if styleModifiers != "" {
		fullPrompt = prompt + ", " + styleModifiers
	}

	resp, err := a.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModel(a.model),
		Prompt: fullPrompt,
		Size:   openai.ImageGenerateParamsSize(a.resolution),
		N:      openai.Int(1),
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		a.logger.Error("OpenAI image generation failed", "model", a.model, "reason", classifyOpenAIError(err))
		return "", nil
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		a.logger.Error("OpenAI image response contained no result", "model", a.model)
		return "", nil
	}

	return a.saver.Download(ctx, resp.Data[0].URL), nil
}
