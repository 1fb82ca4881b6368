package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/open-content-bot/contentbot/app/cfg"
	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/ingest"
	"github.com/open-content-bot/contentbot/app/media"
	"github.com/open-content-bot/contentbot/app/processor"
	"github.com/open-content-bot/contentbot/app/publish"
)

// manualModeInput feeds the processor when the ingestor stage is disabled
const manualModeInput = "Input prompt from manual mode"

func main() {
	// .env is optional; deployments normally provide real environment
	// variables
	_ = godotenv.Load()

	runtimeCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if runtimeCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logger, closeLog, err := newLogger(runtimeCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting content pipeline", "version", runtimeCfg.Version, "dry_run", runtimeCfg.DryRun)

	pipelineCfg, err := config.Load(runtimeCfg.ConfigPath)
	if err != nil {
		logger.Error("Configuration error, aborting", "error", err)
		closeLog()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, runtimeCfg, pipelineCfg, logger); err != nil {
		logger.Error("Pipeline run failed", "error", err)
		closeLog()
		os.Exit(1)
	}

	logger.Info("Pipeline run complete")
}

func run(ctx context.Context, runtimeCfg *cfg.Cfg, pipelineCfg *config.Config, logger *slog.Logger) error {
	// Construct every enabled stage up front so configuration errors abort
	// before any network call
	proc, err := processor.New(pipelineCfg.Modules.Processor, logger)
	if err != nil {
		return fmt.Errorf("processor construction failed: %w", err)
	}

	var studio *media.Studio
	if pipelineCfg.Pipeline.EnableImageGen {
		studio, err = media.New(pipelineCfg.Modules.MediaStudio.Image, logger)
		if err != nil {
			return fmt.Errorf("media studio construction failed: %w", err)
		}
	}

	var dispatcher *publish.Dispatcher
	if pipelineCfg.Pipeline.EnablePublisher {
		dispatcher = publish.NewDispatcher(pipelineCfg.Modules.PublishChannels, runtimeCfg.DryRun, publish.Deps{Logger: logger})
	}

	var rawInput string
	if pipelineCfg.Pipeline.EnableIngestor {
		logger.Info("Stage: ingest")
		ingestor := ingest.New(pipelineCfg.Modules.Ingestor, runtimeCfg.UserAgent, logger)
		rawInput = ingest.FormatItems(ingestor.Fetch(ctx))
	} else {
		logger.Info("Ingestor disabled, using manual mode input")
		rawInput = manualModeInput
	}

	logger.Info("Stage: process")
	bundle, err := proc.Process(ctx, rawInput)
	if err != nil {
		return fmt.Errorf("content processing failed: %w", err)
	}
	logger.Info("Content generated", "caption", truncate(bundle.Caption, 50), "tags", bundle.Tags)

	if studio != nil {
		logger.Info("Stage: render")
		bundle.ImagePath = studio.CreateVisual(ctx, bundle.ImagePrompt)
	}

	if dispatcher != nil {
		logger.Info("Stage: broadcast", "platforms", dispatcher.ActivePlatforms())
		succeeded := dispatcher.Broadcast(ctx, bundle)
		logger.Info("Broadcast complete", "succeeded", succeeded)
	}

	return nil
}

// newLogger builds the shared logging handle: console always, plus an
// append-only log file when configured.
func newLogger(c *cfg.Cfg) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	closeFn := func() {}
	if c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
		closeFn = func() { f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
