package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/open-content-bot/contentbot/app/config"
)

const dashScopeImageURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text2image/image-synthesis"

func init() {
	RegisterImage("dashscope", newDashScopeImage)
}

type dashScopeImage struct {
	apiKey     string
	apiURL     string
	model      string
	resolution string
	client     *http.Client
	saver      *imageSaver
	logger     *slog.Logger
}

func newDashScopeImage(cfg config.ImageConfig, deps Deps) (ImageAdapter, error) {
	apiKey := os.Getenv("DASHSCOPE_API_KEY")
	if apiKey == "" {
		return nil, errMissingKey("DASHSCOPE_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = "wanx-v1"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second

	return &dashScopeImage{
		apiKey: apiKey,
		apiURL: dashScopeImageURL,
		model:  model,
		// DashScope expects 1024*1024 rather than 1024x1024
		resolution: strings.ReplaceAll(cfg.Resolution, "x", "*"),
		client:     &http.Client{Timeout: timeout},
		saver:      newImageSaver(cfg.SaveDir, timeout, deps.Logger),
		logger:     deps.Logger,
	}, nil
}

type dashScopeImageRequest struct {
	Model string `json:"model"`
	Input struct {
		Prompt string `json:"prompt"`
	} `json:"input"`
	Parameters struct {
		Size string `json:"size"`
		N    int    `json:"n"`
	} `json:"parameters"`
}

type dashScopeImageResponse struct {
	RequestID string `json:"request_id"`
	Output    struct {
		Results []struct {
			URL string `json:"url"`
		} `json:"results"`
	} `json:"output"`
}

func (a *dashScopeImage) Generate(ctx context.Context, prompt, styleModifiers string) (string, error) {
	fullPrompt := prompt
	if styleModifiers != "" {
		fullPrompt = prompt + ", " + styleModifiers
	}

	var payload dashScopeImageRequest
	payload.Model = a.model
	payload.Input.Prompt = fullPrompt
	payload.Parameters.Size = a.resolution
	payload.Parameters.N = 1

	body, err := json.Marshal(payload)
	if err != nil {
		a.logger.Error("Failed to encode image request", "error", err)
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(body))
	if err != nil {
		a.logger.Error("Failed to build image request", "error", err)
		return "", nil
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	a.logger.Debug("Sending DashScope image request", "model", a.model, "prompt", fullPrompt)

	resp, err := a.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		a.logger.Error("DashScope image request failed", "reason", classifyTransportError(err))
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		a.logger.Error("DashScope rejected image request", "status", resp.StatusCode, "detail", string(detail))
		return "", nil
	}

	var result dashScopeImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		a.logger.Error("Failed to decode DashScope image response", "error", err)
		return "", nil
	}

	if len(result.Output.Results) == 0 || result.Output.Results[0].URL == "" {
		a.logger.Error("DashScope image response contained no result", "request_id", result.RequestID)
		return "", nil
	}

	return a.saver.Download(ctx, result.Output.Results[0].URL), nil
}
