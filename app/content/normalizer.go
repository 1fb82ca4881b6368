package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// Defaults substituted for fields missing from an otherwise parseable
// provider response.
const (
	DefaultCaption     = "content is being generated..."
	DefaultImagePrompt = "generic placeholder image"
)

// ErrorTag marks a bundle produced from an unrecoverable provider response
const ErrorTag = "#error"

var (
	fenceOpen  = regexp.MustCompile("(?i)^```[a-z0-9]*[ \t]*\r?\n?")
	fenceClose = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// Normalizer converts untrusted provider output into a Bundle the rest of
// the pipeline can rely on structurally. It never fails: malformed input
// degrades to the canonical error bundle instead of propagating an error.
type Normalizer struct {
	logger *slog.Logger
}

func NewNormalizer(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize runs the fallback ladder over a raw provider response:
// fence stripping, strict JSON parsing, balanced-brace extraction, and
// finally the canonical error bundle. On success missing fields are filled
// with documented defaults and tags are coerced into a string slice.
func (n *Normalizer) Normalize(raw string) Result {
	cleaned := stripFences(raw)

	if cleaned == "" {
		n.logger.Warn("Provider returned empty response")
		return Result{Bundle: ErrorBundle("empty response"), Status: StatusUnparseable}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		n.logger.Debug("Response is not valid JSON, attempting extraction", "error", err)

		payload = nil
		for _, candidate := range extractObjects(cleaned) {
			var extracted map[string]any
			if err := json.Unmarshal([]byte(candidate), &extracted); err == nil {
				payload = extracted
				break
			}
		}

		if payload == nil {
			n.logger.Error("Unable to recover JSON object from provider response", "response_prefix", prefix(cleaned, 200))
			return Result{Bundle: ErrorBundle("unparseable provider response"), Status: StatusUnparseable}
		}
	}

	return n.validateStructure(payload)
}

// validateStructure fills missing expected fields with defaults and coerces
// tags into a slice of strings.
func (n *Normalizer) validateStructure(payload map[string]any) Result {
	var missing []string

	caption, ok := payload["caption"].(string)
	if !ok {
		caption = DefaultCaption
		missing = append(missing, "caption")
	}

	imagePrompt, ok := payload["image_prompt"].(string)
	if !ok {
		imagePrompt = DefaultImagePrompt
		missing = append(missing, "image_prompt")
	}

	tagsValue, ok := payload["tags"]
	if !ok {
		missing = append(missing, "tags")
	}
	tags := coerceTags(tagsValue)

	for _, field := range missing {
		n.logger.Warn("Provider response is missing a field, using default", "field", field)
	}

	status := StatusValid
	if len(missing) > 0 {
		status = StatusPartial
	}

	return Result{
		Bundle: Bundle{
			Caption:     caption,
			ImagePrompt: imagePrompt,
			Tags:        tags,
		},
		Status:  status,
		Missing: missing,
	}
}

// ErrorBundle is the canonical degraded bundle returned when a provider
// response cannot be used at all. Downstream stages treat the ErrorTag as
// the operator's signal that something needs attention.
func ErrorBundle(reason string) Bundle {
	return Bundle{
		Caption:     fmt.Sprintf("content generation failed: %s", reason),
		ImagePrompt: "error placeholder image",
		Tags:        []string{ErrorTag},
	}
}

// stripFences removes a leading/trailing fenced code-block marker with any
// language tag, plus surrounding whitespace.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = fenceOpen.ReplaceAllString(s, "")
		s = fenceClose.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
	}
	return s
}

// extractObjects scans text for balanced-brace object candidates, longest
// first. The scanner is string-literal aware so braces inside JSON strings
// do not break the balance count.
func extractObjects(text string) []string {
	var candidates []string

	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					candidates = append(candidates, text[start:i+1])
					start = -1
				}
			}
		}
	}

	// Longest candidate is most likely the complete payload
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	return candidates
}

// coerceTags turns whatever the provider returned for tags into a string
// slice: a comma-joined string is split and trimmed, a list is stringified
// element-wise, anything else becomes an empty slice.
func coerceTags(value any) []string {
	switch v := value.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					tags = append(tags, s)
				}
			}
		}
		return tags
	case string:
		parts := strings.Split(v, ",")
		tags := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				tags = append(tags, part)
			}
		}
		return tags
	default:
		return []string{}
	}
}

func prefix(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
