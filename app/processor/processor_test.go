package processor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
	"github.com/open-content-bot/contentbot/app/providers"
)

var adapterCalls int

func init() {
	providers.RegisterText("counting-mock", func(_ config.ProcessorConfig, _ providers.Deps) (providers.TextAdapter, error) {
		return countingAdapter{}, nil
	})
}

type countingAdapter struct{}

func (countingAdapter) GenerateContent(_ context.Context, rawInput, _ string) (content.Bundle, error) {
	adapterCalls++
	return content.Bundle{Caption: "generated from: " + rawInput, Tags: []string{"#mock"}}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	p, err := New(config.ProcessorConfig{
		Provider:     "counting-mock",
		SystemPrompt: "Return JSON",
	}, testLogger())
	if err != nil {
		t.Fatalf("Failed to build processor: %v", err)
	}
	return p
}

func TestNew_MissingProvider(t *testing.T) {
	_, err := New(config.ProcessorConfig{SystemPrompt: "prompt"}, testLogger())
	if err == nil {
		t.Error("Expected error for missing provider")
	}
}

func TestNew_MissingSystemPrompt(t *testing.T) {
	_, err := New(config.ProcessorConfig{Provider: "counting-mock"}, testLogger())
	if err == nil {
		t.Error("Expected error for missing system prompt")
	}
}

func TestNew_UnknownProviderFailsEagerly(t *testing.T) {
	_, err := New(config.ProcessorConfig{
		Provider:     "does-not-exist",
		SystemPrompt: "prompt",
	}, testLogger())

	if !errors.Is(err, providers.ErrAdapterNotFound) {
		t.Errorf("Expected adapter-not-found at construction, got: %v", err)
	}
}

func TestProcess_EmptyInputShortCircuits(t *testing.T) {
	p := newTestProcessor(t)

	before := adapterCalls
	for _, input := range []string{"", "   ", "\n\t"} {
		bundle, err := p.Process(context.Background(), input)
		if err != nil {
			t.Errorf("Input %q: expected no error, got: %v", input, err)
		}
		if !bundle.IsEmpty() {
			t.Errorf("Input %q: expected empty bundle, got %+v", input, bundle)
		}
	}
	if adapterCalls != before {
		t.Errorf("Adapter must not be invoked for empty input, got %d calls", adapterCalls-before)
	}
}

func TestProcess_InvokesAdapter(t *testing.T) {
	p := newTestProcessor(t)

	before := adapterCalls
	bundle, err := p.Process(context.Background(), "Title: X\nSummary: Y")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if adapterCalls != before+1 {
		t.Errorf("Expected exactly one adapter call, got %d", adapterCalls-before)
	}
	if bundle.Caption != "generated from: Title: X\nSummary: Y" {
		t.Errorf("Unexpected caption: %s", bundle.Caption)
	}
}
