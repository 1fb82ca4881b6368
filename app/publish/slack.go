package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/slack-go/slack"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

func init() {
	Register("slack", newSlackPublisher)
}

type slackPublisher struct {
	api       *slack.Client
	channel   string
	postImage bool
	logger    *slog.Logger
}

func newSlackPublisher(cfg config.ChannelConfig, deps Deps) (Publisher, error) {
	token := os.Getenv("SLACK_BOT_TOKEN")
	if token == "" {
		return nil, errors.New("SLACK_BOT_TOKEN environment variable is not set")
	}

	if cfg.Channel == "" {
		return nil, errors.New("slack channel is required")
	}

	return &slackPublisher{
		api:       slack.New(token),
		channel:   cfg.Channel,
		postImage: cfg.PostImageEnabled(),
		logger:    deps.Logger,
	}, nil
}

func (p *slackPublisher) Name() string { return "slack" }

func (p *slackPublisher) Post(ctx context.Context, bundle content.Bundle) (string, error) {
	text := formatPost(bundle)

	_, timestamp, err := p.api.PostMessageContext(ctx, p.channel, slack.MsgOptionText(text, false))
	if err != nil {
		return "", fmt.Errorf("failed to post slack message: %w", err)
	}

	if p.postImage && bundle.ImagePath != "" {
		if info, statErr := os.Stat(bundle.ImagePath); statErr == nil {
			_, upErr := p.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
				Channel:  p.channel,
				File:     bundle.ImagePath,
				Filename: filepath.Base(bundle.ImagePath),
				FileSize: int(info.Size()),
			})
			if upErr != nil {
				// The text post already went out; the missing image is a
				// degradation, not a platform failure
				p.logger.Warn("Slack image upload failed", "error", upErr)
			}
		} else {
			p.logger.Warn("Image file not readable, skipping upload", "path", bundle.ImagePath, "error", statErr)
		}
	}

	return timestamp, nil
}
