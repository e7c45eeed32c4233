// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score grades a candidate paper against the fixed quality
// rubric via the reasoning service and applies the quality gate.
package score

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

// DefaultMinTotal is the quality cutoff: papers with a total below it are
// rejected. Operator-configurable; the rubric itself is not.
const DefaultMinTotal = 6

// ErrUnscoreable indicates the model's judgment could not be parsed into
// in-range sub-scores. Distinct from a low score so the gate is never fed
// a fabricated zero.
var ErrUnscoreable = errors.New("paper could not be scored")

// ErrLowQuality indicates the paper scored below the quality cutoff.
var ErrLowQuality = errors.New("paper below quality cutoff")

// rubricPromptTmpl is the fixed scoring rubric. The user's interests
// steer which aspects the summary highlights; the sub-scores are judged
// on objective criteria independent of user taste.
var rubricPromptTmpl = template.Must(template.New("rubric").Parse(`You are an experienced ML researcher evaluating a paper for quality and novelty. Grade it fairly against the rubric below. The reader's interests are given only so your summary is useful to them; they must not influence the scores.

READER INTERESTS: {{.Topics}}

### SCORING RUBRIC

NOVELTY (0-4):
  0: no novelty, trivial change
  1: minor variation on known work
  2: notable combination of techniques
  3: significant architectural or methodological change
  4: paradigm shift

RESULTS (0-3):
  0: no quantitative results or worse than baseline
  1: matches prior best results
  2: clear improvement with evidence
  3: exceeds prior best by a large margin (>10%)

COMPLETENESS (0-3):
  0: no code
  1: code promised but not available
  2: code link provided
  3: full reproducible code with ablations

Respond with a JSON object only, using exactly these field names:
{"summary": "one honest sentence on what the paper actually does", "primary_topic": "the paper's main subject as a short phrase", "novelty": <int>, "results": <int>, "completeness": <int>}

PAPER TITLE: {{.Title}}

PAPER TEXT:
{{.Text}}
`))

// maxPaperText bounds the abstract text included in the prompt.
const maxPaperText = 6000

// judgment is the model's response shape.
type judgment struct {
	Summary      string `json:"summary"`
	PrimaryTopic string `json:"primary_topic"`
	Novelty      int    `json:"novelty"`
	Results      int    `json:"results"`
	Completeness int    `json:"completeness"`
}

// Scorer grades papers via a reasoning service.
type Scorer struct {
	Service reasoning.Service

	// MinTotal is the quality cutoff. Zero means DefaultMinTotal.
	MinTotal int
}

// Score grades one paper. Returns ErrUnscoreable when the model output
// cannot be parsed into in-range sub-scores, and ErrLowQuality when the
// total falls below the cutoff. Any other error is a resource-level
// failure from the reasoning service.
func (s *Scorer) Score(ctx context.Context, intent types.UserIntent, paper types.CandidatePaper) (types.Insight, error) {
	minTotal := s.MinTotal
	if minTotal <= 0 {
		minTotal = DefaultMinTotal
	}

	text := paper.Abstract
	if len(text) > maxPaperText {
		text = text[:maxPaperText]
	}

	var buf bytes.Buffer
	err := rubricPromptTmpl.Execute(&buf, struct {
		Topics, Title, Text string
	}{
		Topics: strings.Join(intent.Topics, ", "),
		Title:  paper.Title,
		Text:   text,
	})
	if err != nil {
		return types.Insight{}, fmt.Errorf("rendering rubric prompt: %w", err)
	}

	raw, err := s.Service.Complete(ctx, buf.String())
	if err != nil {
		return types.Insight{}, fmt.Errorf("scoring %s: %w", paper.ID, err)
	}

	j, err := reasoning.Decode[judgment](raw)
	if err != nil {
		return types.Insight{}, fmt.Errorf("%w: %v", ErrUnscoreable, err)
	}

	breakdown := types.ScoreBreakdown{
		Novelty:      j.Novelty,
		Results:      j.Results,
		Completeness: j.Completeness,
	}
	if !breakdown.Valid() {
		return types.Insight{}, fmt.Errorf("%w: sub-scores out of range (%d/%d/%d)",
			ErrUnscoreable, j.Novelty, j.Results, j.Completeness)
	}

	insight := types.Insight{
		Paper:        paper,
		Scores:       breakdown,
		Summary:      strings.TrimSpace(j.Summary),
		PrimaryTopic: strings.TrimSpace(j.PrimaryTopic),
	}

	if breakdown.Total() < minTotal {
		return insight, fmt.Errorf("%w: %d < %d", ErrLowQuality, breakdown.Total(), minTotal)
	}

	return insight, nil
}
