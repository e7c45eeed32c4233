// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-debrief/internal/reasoning"
	"github.com/pdiddy/paper-debrief/pkg/types"
)

// hookPromptTmpl asks the model to connect an accepted paper to the
// user's stated problems in one sentence.
var hookPromptTmpl = template.Must(template.New("hook").Parse(`You connect research papers to a reader's problems.

READER INTERESTS: {{.Topics}}
READER PAIN POINTS: {{.PainPoints}}

PAPER: {{.Summary}}

Write one sentence explaining why this paper helps the reader. Start
directly with "This paper" or "By using". Respond with a JSON object
only: {"reason": "..."}
`))

// personalize generates the one-sentence hook for an accepted insight.
// Malformed model output falls back to a generic sentence; the hook is
// decoration, never grounds for rejecting a paper that earned its place.
func (p *Pipeline) personalize(ctx context.Context, userIntent types.UserIntent, insight types.Insight) string {
	var buf bytes.Buffer
	err := hookPromptTmpl.Execute(&buf, struct {
		Topics, PainPoints, Summary string
	}{
		Topics:     strings.Join(userIntent.Topics, ", "),
		PainPoints: strings.Join(userIntent.PainPoints, ", "),
		Summary:    insight.Summary,
	})
	if err != nil {
		return fallbackReason(userIntent)
	}

	raw, err := p.Reasoner.Complete(ctx, buf.String())
	if err != nil {
		return fallbackReason(userIntent)
	}

	decoded, err := reasoning.Decode[struct {
		Reason string `json:"reason"`
	}](raw)
	if err != nil || strings.TrimSpace(decoded.Reason) == "" {
		return fallbackReason(userIntent)
	}
	return strings.TrimSpace(decoded.Reason)
}

// fallbackReason names the user's first pain point, or their research
// generally, when no generated hook is available.
func fallbackReason(userIntent types.UserIntent) string {
	if len(userIntent.PainPoints) > 0 {
		return "Relevant to " + userIntent.PainPoints[0] + "."
	}
	return "Relevant to your research interests."
}
