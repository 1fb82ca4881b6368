package publish

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

// Dispatcher fans one content bundle out to every enabled platform. A
// platform that fails to load is excluded at construction; a platform that
// fails to post is logged and skipped without interrupting delivery to the
// rest.
type Dispatcher struct {
	publishers []Publisher
	logger     *slog.Logger
	dryRun     bool
}

func NewDispatcher(channels map[string]config.ChannelConfig, dryRun bool, deps Deps) *Dispatcher {
	d := &Dispatcher{
		logger: deps.Logger,
		dryRun: dryRun,
	}

	// Deterministic load and broadcast order
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		channel := channels[name]
		if !channel.Enabled {
			continue
		}

		factory, ok := factories[name]
		if !ok {
			deps.Logger.Error("No publisher registered for platform, skipping",
				"platform", name, "known", knownPlatforms())
			continue
		}

		publisher, err := factory(channel, deps)
		if err != nil {
			deps.Logger.Error("Failed to load publisher, excluding platform",
				"platform", name, "error", err)
			continue
		}

		d.publishers = append(d.publishers, publisher)
		deps.Logger.Info("Loaded publisher", "platform", name)
	}

	return d
}

// ActivePlatforms lists the platforms that loaded successfully
func (d *Dispatcher) ActivePlatforms() []string {
	names := make([]string, 0, len(d.publishers))
	for _, p := range d.publishers {
		names = append(names, p.Name())
	}
	return names
}

// Broadcast delivers the bundle to every active platform and returns the
// number of successful posts. Per-platform failures are isolated: they are
// logged with platform identity and reason, and delivery continues.
func (d *Dispatcher) Broadcast(ctx context.Context, bundle content.Bundle) int {
	if len(d.publishers) == 0 {
		d.logger.Warn("No enabled publish channels, skipping broadcast")
		return 0
	}

	succeeded := 0
	for _, publisher := range d.publishers {
		d.logger.Info("Publishing", "platform", publisher.Name())

		if d.dryRun {
			d.logger.Info("Dry run, skipping post", "platform", publisher.Name(), "caption", bundle.Caption)
			succeeded++
			continue
		}

		receipt, err := publisher.Post(ctx, bundle)
		if err != nil {
			d.logger.Error("Publish failed", "platform", publisher.Name(), "error", err)
			continue
		}

		d.logger.Info("Publish succeeded", "platform", publisher.Name(), "receipt", receipt)
		succeeded++
	}

	return succeeded
}

func knownPlatforms() string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%v", names)
}
