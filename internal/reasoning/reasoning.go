// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reasoning wraps a generative language model behind a small
// completion interface and provides validated decoding of its structured
// output. Model output is treated as unreliable: malformed JSON is an
// expected condition surfaced as ErrUnparsable, never a panic and never
// a silently zeroed result.
package reasoning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Service produces a completion for a prompt. Implementations wrap a
// single exclusively-owned model; callers may assume the implementation
// serializes concurrent calls.
type Service interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrUnparsable indicates the model's response could not be decoded into
// the expected structure. Callers decide the fallback: reject the paper,
// or substitute a conservative default.
var ErrUnparsable = errors.New("model response is not valid structured output")

// Decode extracts a JSON object from raw model output and unmarshals it
// into T. It tolerates markdown code fences and prose surrounding the
// object. Any failure returns ErrUnparsable (wrapped with detail).
func Decode[T any](raw string) (T, error) {
	var out T

	text := stripFences(raw)
	if body, ok := braceSpan(text); ok {
		text = body
	}

	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return out, nil
}

// stripFences removes a surrounding markdown code fence, with or without
// a language tag, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "```") {
		return s
	}
	parts := strings.SplitN(s, "```", 3)
	if len(parts) < 2 {
		return s
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

// braceSpan returns the substring from the first '{' to the last '}',
// which recovers the object when the model wraps it in prose.
func braceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
