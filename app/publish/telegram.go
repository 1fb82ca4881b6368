package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

func init() {
	Register("telegram", newTelegramPublisher)
}

type telegramPublisher struct {
	bot       *telego.Bot
	chatID    int64
	postImage bool
	logger    *slog.Logger
}

func newTelegramPublisher(cfg config.ChannelConfig, deps Deps) (Publisher, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if cfg.ChatID == "" {
		return nil, errors.New("telegram chat_id is required")
	}
	chatID, err := strconv.ParseInt(cfg.ChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat_id %q: %w", cfg.ChatID, err)
	}

	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &telegramPublisher{
		bot:       bot,
		chatID:    chatID,
		postImage: cfg.PostImageEnabled(),
		logger:    deps.Logger,
	}, nil
}

func (p *telegramPublisher) Name() string { return "telegram" }

func (p *telegramPublisher) Post(ctx context.Context, bundle content.Bundle) (string, error) {
	text := formatPost(bundle)

	if p.postImage && bundle.ImagePath != "" {
		if file, err := os.Open(bundle.ImagePath); err == nil {
			defer file.Close()

			msg, err := p.bot.SendPhoto(ctx, tu.Photo(tu.ID(p.chatID), tu.File(file)).WithCaption(text))
			if err == nil {
				return strconv.Itoa(msg.MessageID), nil
			}
			// Degrade to a text-only post rather than failing the platform
			p.logger.Warn("Telegram photo upload failed, sending text only", "error", err)
		} else {
			p.logger.Warn("Image file not readable, sending text only", "path", bundle.ImagePath, "error", err)
		}
	}

	msg, err := p.bot.SendMessage(ctx, tu.Message(tu.ID(p.chatID), text))
	if err != nil {
		return "", fmt.Errorf("failed to send telegram message: %w", err)
	}

	return strconv.Itoa(msg.MessageID), nil
}
