package content

import (
	"time"
)

// SourceType identifies where a raw item came from
type SourceType string

const (
	SourceRSS    SourceType = "rss"
	SourceTrends SourceType = "trends"
)

// RawItem is a single piece of ingested material. Created by the ingestor,
// consumed read-only downstream.
type RawItem struct {
	Title      string
	Link       string
	Summary    string
	SourceType SourceType
	Timestamp  time.Time
}

// Bundle is the normalized content unit passed between pipeline stages.
// After normalization Caption, ImagePrompt and Tags are always present;
// ImagePath is set by the media stage when an image was rendered.
type Bundle struct {
	Caption     string   `json:"caption"`
	ImagePrompt string   `json:"image_prompt"`
	Tags        []string `json:"tags"`
	ImagePath   string   `json:"image_path,omitempty"`
}

// IsEmpty reports whether the bundle carries no usable content
func (b Bundle) IsEmpty() bool {
	return b.Caption == "" && b.ImagePrompt == "" && len(b.Tags) == 0
}

// Status describes how a provider response made it through normalization
type Status int

const (
	// StatusValid: the response parsed cleanly with all expected fields
	StatusValid Status = iota
	// StatusPartial: the response parsed but one or more fields were defaulted
	StatusPartial
	// StatusUnparseable: no JSON object could be recovered; the bundle is the
	// canonical error bundle
	StatusUnparseable
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusPartial:
		return "partial"
	case StatusUnparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// Result is the outcome of normalizing a raw provider response. The Bundle
// is always usable regardless of Status.
type Result struct {
	Bundle  Bundle
	Status  Status
	Missing []string
}
