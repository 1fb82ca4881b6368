package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bwmarrin/discordgo"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

func init() {
	Register("discord", newDiscordPublisher)
}

type discordPublisher struct {
	session   *discordgo.Session
	channelID string
	postImage bool
	logger    *slog.Logger
}

func newDiscordPublisher(cfg config.ChannelConfig, deps Deps) (Publisher, error) {
	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		return nil, errors.New("DISCORD_BOT_TOKEN environment variable is not set")
	}

	if cfg.ChannelID == "" {
		return nil, errors.New("discord channel_id is required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &discordPublisher{
		session:   session,
		channelID: cfg.ChannelID,
		postImage: cfg.PostImageEnabled(),
		logger:    deps.Logger,
	}, nil
}

func (p *discordPublisher) Name() string { return "discord" }

func (p *discordPublisher) Post(ctx context.Context, bundle content.Bundle) (string, error) {
	text := formatPost(bundle)

	if p.postImage && bundle.ImagePath != "" {
		if file, err := os.Open(bundle.ImagePath); err == nil {
			defer file.Close()

			msg, err := p.session.ChannelMessageSendComplex(p.channelID, &discordgo.MessageSend{
				Content: text,
				Files: []*discordgo.File{{
					Name:   filepath.Base(bundle.ImagePath),
					Reader: file,
				}},
			}, discordgo.WithContext(ctx))
			if err == nil {
				return msg.ID, nil
			}
			p.logger.Warn("Discord image upload failed, sending text only", "error", err)
		} else {
			p.logger.Warn("Image file not readable, sending text only", "path", bundle.ImagePath, "error", err)
		}
	}

	msg, err := p.session.ChannelMessageSend(p.channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send discord message: %w", err)
	}

	return msg.ID, nil
}
