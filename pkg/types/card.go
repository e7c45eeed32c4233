// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Badge labels attached to ranked cards.
const (
	BadgeTopPick      = "Top Pick"
	BadgeTopicMatch   = "Topic Match"
	BadgeReproducible = "Reproducible"
	BadgeSOTABeat     = "SOTA Beat"
	BadgeNewArch      = "New Arch"
)

// RankedCard is the final user-facing unit of output for one paper.
// Created by the ranker; immutable once the briefing is assembled.
type RankedCard struct {
	// Rank is 1-based position in the briefing.
	Rank int `json:"rank" yaml:"rank"`

	// ID is the paper's catalog identifier.
	ID string `json:"id" yaml:"id"`

	Title              string   `json:"title" yaml:"title"`
	Summary            string   `json:"summary" yaml:"summary"`
	PersonalizedReason string   `json:"personalized_reason" yaml:"personalized_reason"`
	Badges             []string `json:"badges" yaml:"badges"`

	Scores ScoreBreakdown `json:"scores" yaml:"scores"`

	// NoveltyPct, ResultsPct, CompletenessPct express the sub-scores as
	// percentages of their rubric maxima, for display.
	NoveltyPct      int `json:"novelty_pct" yaml:"novelty_pct"`
	ResultsPct      int `json:"results_pct" yaml:"results_pct"`
	CompletenessPct int `json:"completeness_pct" yaml:"completeness_pct"`

	// Relevance is the intent-to-paper similarity in [0,1].
	Relevance float64 `json:"relevance" yaml:"relevance"`

	// Priority is the blended ranking score: total + relevance*20 + bonus.
	Priority float64 `json:"priority" yaml:"priority"`

	// ReadLink is the direct URL to the paper.
	ReadLink string `json:"read_link" yaml:"read_link"`
}

// Briefing is the complete output of one pipeline run.
type Briefing struct {
	// RunID uniquely identifies the run that produced this briefing.
	RunID string `json:"run_id" yaml:"run_id"`

	// Date is the paper listing date the briefing covers (YYYY-MM-DD),
	// empty when the latest trending papers were used.
	Date string `json:"date" yaml:"date"`

	// GeneratedAt is the briefing creation timestamp (RFC 3339).
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`

	// Intent echoes the structured intent the briefing was built for.
	Intent UserIntent `json:"intent" yaml:"intent"`

	// Cards are the ranked papers, best first. May be empty: a run with
	// no surviving papers is a successful run with zero cards.
	Cards []RankedCard `json:"cards" yaml:"cards"`
}
