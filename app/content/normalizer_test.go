package content

import (
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNormalize_PlainJSON(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(`{"caption":"Hello","image_prompt":"a cat","tags":["#a","#b"]}`)

	if result.Status != StatusValid {
		t.Errorf("Expected valid status, got %s", result.Status)
	}
	if result.Bundle.Caption != "Hello" {
		t.Errorf("Expected caption 'Hello', got '%s'", result.Bundle.Caption)
	}
	if result.Bundle.ImagePrompt != "a cat" {
		t.Errorf("Expected image prompt 'a cat', got '%s'", result.Bundle.ImagePrompt)
	}
	if !reflect.DeepEqual(result.Bundle.Tags, []string{"#a", "#b"}) {
		t.Errorf("Expected tags [#a #b], got %v", result.Bundle.Tags)
	}
}

func TestNormalize_FencedJSONMatchesUnfenced(t *testing.T) {
	n := newTestNormalizer()

	payload := `{"caption":"Hello","image_prompt":"a cat","tags":["#a"]}`
	fenced := []string{
		"```json\n" + payload + "\n```",
		"```JSON\n" + payload + "\n```",
		"```yaml\n" + payload + "\n```",
		"```\n" + payload + "\n```",
		"   ```json\n" + payload + "\n```   ",
	}

	want := n.Normalize(payload)
	for _, input := range fenced {
		got := n.Normalize(input)
		if !reflect.DeepEqual(got.Bundle, want.Bundle) {
			t.Errorf("Fenced input %q normalized to %+v, want %+v", input, got.Bundle, want.Bundle)
		}
		if got.Status != StatusValid {
			t.Errorf("Fenced input %q got status %s, want valid", input, got.Status)
		}
	}
}

func TestNormalize_JSONWrappedInProse(t *testing.T) {
	n := newTestNormalizer()

	input := "Sure! Here is the content you asked for:\n" +
		`{"caption":"Hi","image_prompt":"sunset","tags":["#sun"]}` +
		"\nLet me know if you need changes."

	result := n.Normalize(input)

	if result.Status != StatusValid {
		t.Fatalf("Expected valid status, got %s", result.Status)
	}
	if result.Bundle.Caption != "Hi" {
		t.Errorf("Expected caption 'Hi', got '%s'", result.Bundle.Caption)
	}
	if result.Bundle.ImagePrompt != "sunset" {
		t.Errorf("Expected image prompt 'sunset', got '%s'", result.Bundle.ImagePrompt)
	}
}

func TestNormalize_BracesInsideStrings(t *testing.T) {
	n := newTestNormalizer()

	input := `noise before {"caption":"a { brace } inside","image_prompt":"x","tags":[]} noise after`

	result := n.Normalize(input)

	if result.Status != StatusValid {
		t.Fatalf("Expected valid status, got %s", result.Status)
	}
	if result.Bundle.Caption != "a { brace } inside" {
		t.Errorf("Expected braces preserved inside string, got '%s'", result.Bundle.Caption)
	}
}

func TestNormalize_NoJSONReturnsErrorBundle(t *testing.T) {
	n := newTestNormalizer()

	for _, input := range []string{
		"I am sorry, I cannot help with that.",
		"",
		"{{{ not json",
		"[1, 2, 3]",
	} {
		result := n.Normalize(input)

		if result.Status != StatusUnparseable {
			t.Errorf("Input %q: expected unparseable status, got %s", input, result.Status)
		}
		if result.Bundle.Caption == "" {
			t.Errorf("Input %q: error bundle must have a non-empty caption", input)
		}
		if !strings.Contains(result.Bundle.Caption, "failed") {
			t.Errorf("Input %q: expected failure caption, got '%s'", input, result.Bundle.Caption)
		}
		if result.Bundle.ImagePrompt == "" {
			t.Errorf("Input %q: error bundle must have a non-empty image prompt", input)
		}
		if !reflect.DeepEqual(result.Bundle.Tags, []string{ErrorTag}) {
			t.Errorf("Input %q: expected sentinel tags [%s], got %v", input, ErrorTag, result.Bundle.Tags)
		}
	}
}

func TestNormalize_MissingFieldsGetDefaults(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(`{"caption":"Present"}`)

	if result.Status != StatusPartial {
		t.Errorf("Expected partial status, got %s", result.Status)
	}
	if result.Bundle.Caption != "Present" {
		t.Errorf("Present field must be left untouched, got '%s'", result.Bundle.Caption)
	}
	if result.Bundle.ImagePrompt != DefaultImagePrompt {
		t.Errorf("Expected default image prompt, got '%s'", result.Bundle.ImagePrompt)
	}
	if len(result.Bundle.Tags) != 0 {
		t.Errorf("Expected empty default tags, got %v", result.Bundle.Tags)
	}
	if !reflect.DeepEqual(result.Missing, []string{"image_prompt", "tags"}) {
		t.Errorf("Expected missing [image_prompt tags], got %v", result.Missing)
	}
}

func TestNormalize_AllFieldsMissing(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(`{"unexpected":"shape"}`)

	if result.Status != StatusPartial {
		t.Errorf("Expected partial status, got %s", result.Status)
	}
	if result.Bundle.Caption != DefaultCaption {
		t.Errorf("Expected default caption, got '%s'", result.Bundle.Caption)
	}
	if len(result.Missing) != 3 {
		t.Errorf("Expected 3 missing fields, got %v", result.Missing)
	}
}

func TestNormalize_TagsAsCommaJoinedString(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(`{"caption":"c","image_prompt":"p","tags":"#a, #b,#c"}`)

	want := []string{"#a", "#b", "#c"}
	if !reflect.DeepEqual(result.Bundle.Tags, want) {
		t.Errorf("Expected tags %v, got %v", want, result.Bundle.Tags)
	}
	if result.Status != StatusValid {
		t.Errorf("Expected valid status for present-but-coerced tags, got %s", result.Status)
	}
}

func TestNormalize_TagsOfWrongTypeBecomeEmpty(t *testing.T) {
	n := newTestNormalizer()

	for _, input := range []string{
		`{"caption":"c","image_prompt":"p","tags":42}`,
		`{"caption":"c","image_prompt":"p","tags":{"a":1}}`,
		`{"caption":"c","image_prompt":"p","tags":null}`,
	} {
		result := n.Normalize(input)
		if len(result.Bundle.Tags) != 0 {
			t.Errorf("Input %q: expected empty tags, got %v", input, result.Bundle.Tags)
		}
	}
}

func TestNormalize_EndToEndFencedScenario(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize("```json\n{\"caption\":\"Hi\",\"image_prompt\":\"cat\",\"tags\":\"#a,#b\"}\n```")

	if result.Bundle.Caption != "Hi" {
		t.Errorf("Expected caption 'Hi', got '%s'", result.Bundle.Caption)
	}
	if result.Bundle.ImagePrompt != "cat" {
		t.Errorf("Expected image prompt 'cat', got '%s'", result.Bundle.ImagePrompt)
	}
	if !reflect.DeepEqual(result.Bundle.Tags, []string{"#a", "#b"}) {
		t.Errorf("Expected tags [#a #b], got %v", result.Bundle.Tags)
	}
}

func TestErrorBundle(t *testing.T) {
	bundle := ErrorBundle("request timed out")

	if !strings.Contains(bundle.Caption, "request timed out") {
		t.Errorf("Expected reason in caption, got '%s'", bundle.Caption)
	}
	if bundle.ImagePrompt == "" {
		t.Error("Error bundle must carry a placeholder image prompt")
	}
	if !reflect.DeepEqual(bundle.Tags, []string{ErrorTag}) {
		t.Errorf("Expected sentinel tag, got %v", bundle.Tags)
	}
}

func TestExtractObjects_PrefersLongest(t *testing.T) {
	candidates := extractObjects(`{"a":1} and then {"caption":"real","image_prompt":"p","tags":[]}`)

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}
	if !strings.Contains(candidates[0], "caption") {
		t.Errorf("Expected longest candidate first, got %q", candidates[0])
	}
}
