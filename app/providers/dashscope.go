package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

const dashScopeTextURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

func init() {
	RegisterText("dashscope", newDashScopeText)
}

type dashScopeText struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	client      *http.Client
	normalizer  *content.Normalizer
	logger      *slog.Logger
}

func newDashScopeText(cfg config.ProcessorConfig, deps Deps) (TextAdapter, error) {
	apiKey := os.Getenv("DASHSCOPE_API_KEY")
	if apiKey == "" {
		return nil, errMissingKey("DASHSCOPE_API_KEY")
	}

	model := cfg.Model
	if model == "" {
		model = "qwen-plus"
	}

	return &dashScopeText{
		apiKey:      apiKey,
		apiURL:      dashScopeTextURL,
		model:       model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		normalizer:  content.NewNormalizer(deps.Logger),
		logger:      deps.Logger,
	}, nil
}

type dashScopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type dashScopeTextRequest struct {
	Model      string `json:"model"`
	Input      struct {
		Messages []dashScopeMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string  `json:"result_format"`
		Temperature  float64 `json:"temperature,omitempty"`
	} `json:"parameters"`
}

type dashScopeTextResponse struct {
	RequestID string `json:"request_id"`
	Output    struct {
		Choices []struct {
			Message dashScopeMessage `json:"message"`
		} `json:"choices"`
	} `json:"output"`
}

func (a *dashScopeText) GenerateContent(ctx context.Context, rawInput, systemPrompt string) (content.Bundle, error) {
	var payload dashScopeTextRequest
	payload.Model = a.model
	payload.Input.Messages = []dashScopeMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Process the following raw material and respond in JSON format:\n%s", rawInput)},
	}
	payload.Parameters.ResultFormat = "message"
	payload.Parameters.Temperature = a.temperature

	body, err := json.Marshal(payload)
	if err != nil {
		return content.ErrorBundle("failed to encode request"), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(body))
	if err != nil {
		return content.ErrorBundle("failed to build request"), nil
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	a.logger.Debug("Sending DashScope request", "model", a.model, "input_bytes", len(rawInput))

	resp, err := a.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return content.Bundle{}, ctx.Err()
		}
		reason := classifyTransportError(err)
		a.logger.Error("DashScope request failed", "model", a.model, "reason", reason)
		return content.ErrorBundle(reason), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		a.logger.Error("DashScope rejected request", "status", resp.StatusCode, "detail", string(detail))
		return content.ErrorBundle(fmt.Sprintf("remote rejected request: status %d", resp.StatusCode)), nil
	}

	var result dashScopeTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		a.logger.Error("Failed to decode DashScope response", "error", err)
		return content.ErrorBundle("unexpected response format"), nil
	}

	if len(result.Output.Choices) == 0 {
		a.logger.Error("DashScope response contained no choices", "request_id", result.RequestID)
		return content.ErrorBundle("empty response from provider"), nil
	}

	a.logger.Debug("DashScope response received", "request_id", result.RequestID)

	return a.normalizer.Normalize(result.Output.Choices[0].Message.Content).Bundle, nil
}
