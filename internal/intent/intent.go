// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intent turns a user's free-text research prompt into a
// structured UserIntent via the reasoning service.
package intent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-debrief/internal/reasoning"
	"github.com/pdiddy/paper-debrief/pkg/types"
)

// extractionPromptTmpl asks the model to pull topics, pain points, and
// negative keywords out of the user's request.
var extractionPromptTmpl = template.Must(template.New("intent").Parse(`You are an expert research librarian. Extract search metadata from the user's request.

USER REQUEST:
{{.Prompt}}

Extract:
- topics: the research areas the user cares about, as short keyword phrases
- pain_points: concrete problems the user is trying to solve
- negative_keywords: subjects the user wants to avoid

Respond with a JSON object only, no text outside it:
{"topics": ["..."], "pain_points": ["..."], "negative_keywords": ["..."]}
`))

// Extract builds a UserIntent from the raw prompt. It never fails the
// run on malformed model output: if the response cannot be decoded, or
// decodes to an intent with no topics, the whole prompt becomes a single
// topic with no negative keywords. A transport-level error from the
// reasoning service still propagates, since that signals an unusable
// model rather than one bad response.
func Extract(ctx context.Context, svc reasoning.Service, prompt string) (types.UserIntent, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return types.UserIntent{}, fmt.Errorf("prompt is empty")
	}

	var buf bytes.Buffer
	if err := extractionPromptTmpl.Execute(&buf, struct{ Prompt string }{Prompt: prompt}); err != nil {
		return types.UserIntent{}, fmt.Errorf("rendering intent prompt: %w", err)
	}

	raw, err := svc.Complete(ctx, buf.String())
	if err != nil {
		return types.UserIntent{}, fmt.Errorf("extracting intent: %w", err)
	}

	parsed, err := reasoning.Decode[types.UserIntent](raw)
	if err != nil {
		if errors.Is(err, reasoning.ErrUnparsable) {
			return fallback(prompt), nil
		}
		return types.UserIntent{}, err
	}

	parsed.Topics = cleanList(parsed.Topics)
	parsed.PainPoints = cleanList(parsed.PainPoints)
	parsed.NegativeKeywords = cleanList(parsed.NegativeKeywords)

	if len(parsed.Topics) == 0 {
		return fallback(prompt), nil
	}
	return parsed, nil
}

// fallback treats the entire prompt as one topic.
func fallback(prompt string) types.UserIntent {
	return types.UserIntent{Topics: []string{prompt}}
}

// cleanList trims entries and drops empties, preserving order.
func cleanList(items []string) []string {
	var out []string
	for _, s := range items {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
