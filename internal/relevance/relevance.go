// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores how closely a paper matches the user's intent
// and evaluates negative-keyword exclusions.
package relevance

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-debrief/internal/embedding"
	"github.com/pdiddy/paper-debrief/pkg/types"
)

// DefaultMinRelevance is the gate applied after exclusion: papers whose
// relevance is at or below it are dropped as insufficiently relevant.
const DefaultMinRelevance = 0.2

// Match is the outcome of relevance evaluation for one paper.
type Match struct {
	// Score is the intent-to-paper similarity in [0,1].
	Score float64

	// Excluded is set when a negative keyword matches the paper's text.
	// It is a hard veto, independent of Score.
	Excluded bool

	// MatchedKeyword is the negative keyword that triggered exclusion.
	MatchedKeyword string
}

// Matcher computes relevance via an embedder. The intent embedding is
// computed once and cached: the intent is immutable for the run.
type Matcher struct {
	Embedder embedding.Embedder

	intentVec []float64
}

// Evaluate returns the relevance match for one paper. The similarity is
// cosine mapped from [-1,1] to [0,1] and clamped; degenerate (zero)
// vectors yield relevance 0 rather than an error. The exclusion check is
// a case-insensitive substring match of each negative keyword against
// the paper's title and abstract.
func (m *Matcher) Evaluate(ctx context.Context, intent types.UserIntent, paper types.CandidatePaper) (Match, error) {
	paperText := paper.Title + "\n" + paper.Abstract

	if kw, hit := matchNegative(intent.NegativeKeywords, paperText); hit {
		return Match{Excluded: true, MatchedKeyword: kw}, nil
	}

	if m.intentVec == nil {
		vec, err := m.Embedder.Embed(ctx, intentText(intent))
		if err != nil {
			return Match{}, fmt.Errorf("embedding intent: %w", err)
		}
		m.intentVec = vec
	}

	paperVec, err := m.Embedder.Embed(ctx, paperText)
	if err != nil {
		return Match{}, fmt.Errorf("embedding paper %s: %w", paper.ID, err)
	}

	// A degenerate vector means no signal: relevance 0, not an error
	// and not the 0.5 that mapping a zero cosine would produce.
	if isZero(m.intentVec) || isZero(paperVec) {
		return Match{Score: 0}, nil
	}

	return Match{Score: toUnitRange(embedding.Cosine(m.intentVec, paperVec))}, nil
}

// isZero reports whether the vector is empty or all zeros.
func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

// intentText concatenates the user's topics and pain points into the
// text that represents their interests.
func intentText(intent types.UserIntent) string {
	parts := make([]string, 0, len(intent.Topics)+len(intent.PainPoints))
	parts = append(parts, intent.Topics...)
	parts = append(parts, intent.PainPoints...)
	return strings.Join(parts, ". ")
}

// matchNegative reports the first negative keyword found in text,
// case-insensitively.
func matchNegative(keywords []string, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k != "" && strings.Contains(lower, k) {
			return kw, true
		}
	}
	return "", false
}

// toUnitRange maps a cosine in [-1,1] to [0,1], clamping anything that
// drifts outside the range.
func toUnitRange(cos float64) float64 {
	v := (cos + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
