package ingest

import (
	"strings"

	"github.com/open-content-bot/contentbot/app/content"
)

// FilterByKeywords keeps items whose title contains at least one of the
// keywords, case-insensitive. An empty keyword list keeps everything.
func FilterByKeywords(items []content.RawItem, keywords []string) []content.RawItem {
	if len(keywords) == 0 {
		return items
	}

	filtered := make([]content.RawItem, 0, len(items))
	for _, item := range items {
		if matchesAnyKeyword(item.Title, keywords) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

func matchesAnyKeyword(title string, keywords []string) bool {
	lowered := strings.ToLower(title)
	for _, keyword := range keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
