package publish

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

// Publisher is the platform capability contract. Post delivers one content
// bundle and returns a platform-native receipt identifier.
type Publisher interface {
	Name() string
	Post(ctx context.Context, bundle content.Bundle) (string, error)
}

// Deps carries the shared collaborators injected into publishers at
// construction.
type Deps struct {
	Logger *slog.Logger
}

// Factory builds a platform publisher from its channel configuration
type Factory func(cfg config.ChannelConfig, deps Deps) (Publisher, error)

var factories = map[string]Factory{}

// Register registers a platform publisher factory under a platform name.
// Called from publisher init() functions at process start.
func Register(name string, factory Factory) {
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("publisher %q registered twice", name))
	}
	factories[name] = factory
}

// formatPost renders the platform-display text: caption plus the hashtag
// line.
func formatPost(bundle content.Bundle) string {
	if len(bundle.Tags) == 0 {
		return bundle.Caption
	}
	return bundle.Caption + "\n\n" + strings.Join(bundle.Tags, " ")
}
