package deploy

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// Parser Functions
// =============================================================================

// Parse decodes raw completion text into a Document. The text may be wrapped
// in a single Markdown code fence (```, optionally tagged ```json); any other
// wrapping is rejected by the JSON decoder.
// This is a pure function - no I/O, no side effects.
func Parse(raw string) (*Document, error) {
	stripped := StripFence(raw)
	if stripped == "" {
		return nil, NewParseError("completion is empty", ErrEmptyInput)
	}

	var doc Document
	if err := json.Unmarshal([]byte(stripped), &doc); err != nil {
		return nil, NewParseError("completion is not valid JSON", ErrInvalidJSON)
	}

	return &doc, nil
}

// Validate checks that a document has at least one deployable unit.
// Field semantics beyond that are owned by the orchestrator.
func Validate(doc *Document) error {
	if doc.ContainerCount() == 0 {
		return ErrNoContainers
	}
	return nil
}

// StripFence removes a surrounding triple-backtick code fence, optionally
// tagged "json", from the completion text. Text without a leading fence is
// returned whitespace-trimmed and otherwise untouched.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")

	// Drop the closing fence and anything after it, if present.
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[:i]
	}

	return strings.TrimSpace(s)
}
