package streaks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// StripFences removes a leading Markdown code fence (with or without a
// language tag) and a trailing fence, then trims whitespace.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Sanitize turns model text into a suggestion body. The JSON is returned
// compacted but otherwise as the model wrote it, extra keys included.
// Steps are only checked to be an array.
func Sanitize(text string) (json.RawMessage, error) {
	cleaned := []byte(StripFences(text))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(cleaned, &fields); err != nil {
		if json.Valid(cleaned) {
			return nil, fmt.Errorf("%w: reply is not an object", ErrShape)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: reply is null", ErrShape)
	}

	if !nonEmptyString(fields["emoji"]) {
		return nil, fmt.Errorf("%w: missing emoji", ErrShape)
	}
	if !nonEmptyString(fields["description"]) {
		return nil, fmt.Errorf("%w: missing description", ErrShape)
	}
	if !isArray(fields["steps"]) {
		return nil, fmt.Errorf("%w: steps is not an array", ErrShape)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, cleaned); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return buf.Bytes(), nil
}

func nonEmptyString(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s != ""
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
