package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/open-content-bot/contentbot/app/config"
	"github.com/open-content-bot/contentbot/app/content"
)

// Ingestor collects raw material from the configured sources. A source that
// fails to fetch is logged and skipped; an empty result set is not an error.
type Ingestor struct {
	cfg       config.IngestorConfig
	parser    *gofeed.Parser
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

func New(cfg config.IngestorConfig, userAgent string, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		cfg:       cfg,
		parser:    gofeed.NewParser(),
		client:    &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch gathers items from all enabled sources and applies the keyword
// filter.
func (i *Ingestor) Fetch(ctx context.Context) []content.RawItem {
	i.logger.Info("Starting data ingestion")

	var items []content.RawItem

	if i.cfg.EnableRSS {
		items = append(items, i.fetchRSS(ctx)...)
	}

	if i.cfg.EnableTrends {
		items = append(items, i.fetchTrends()...)
	}

	filtered := FilterByKeywords(items, i.cfg.Keywords)
	i.logger.Info("Ingestion complete", "fetched", len(items), "after_filter", len(filtered))

	return filtered
}

func (i *Ingestor) fetchRSS(ctx context.Context) []content.RawItem {
	var items []content.RawItem

	for _, url := range i.cfg.RSSURLs {
		i.logger.Info("Fetching RSS feed", "url", url)

		feed, err := i.fetchFeed(ctx, url)
		if err != nil {
			i.logger.Warn("Failed to fetch RSS feed, skipping", "url", url, "error", err)
			continue
		}

		count := 0
		for _, entry := range feed.Items {
			if count >= i.cfg.MaxPerFeed {
				break
			}
			items = append(items, content.RawItem{
				Title:      entry.Title,
				Link:       entry.Link,
				Summary:    entry.Description,
				SourceType: content.SourceRSS,
				Timestamp:  time.Now(),
			})
			count++
		}
	}

	return items
}

func (i *Ingestor) fetchFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	feed, err := i.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return feed, nil
}

// fetchTrends returns a stubbed trend item. A real trends API integration
// plugs in here.
func (i *Ingestor) fetchTrends() []content.RawItem {
	i.logger.Info("Fetching trends")

	return []content.RawItem{
		{
			Title:      "AI Content Automation is Booming",
			Summary:    "Recent trends show a 300% increase in automated media...",
			SourceType: content.SourceTrends,
			Timestamp:  time.Now(),
		},
	}
}

// FormatItems renders raw items into the text block handed to the content
// processor.
func FormatItems(items []content.RawItem) string {
	var sb strings.Builder
	for idx, item := range items {
		if idx > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Title: %s\n", item.Title)
		if item.Link != "" {
			fmt.Fprintf(&sb, "Link: %s\n", item.Link)
		}
		fmt.Fprintf(&sb, "Summary: %s\n", item.Summary)
	}
	return sb.String()
}
