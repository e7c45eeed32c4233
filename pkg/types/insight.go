// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Score rubric bounds. The rubric itself is fixed; see internal/score.
const (
	MaxNovelty      = 4
	MaxResults      = 3
	MaxCompleteness = 3
	MaxTotal        = MaxNovelty + MaxResults + MaxCompleteness
)

// ScoreBreakdown holds the three rubric sub-scores for a paper.
// Total is always the sum of the sub-scores, recomputed locally rather
// than trusted from model output.
type ScoreBreakdown struct {
	// Novelty in [0,4]: 1 minor variation, 2 notable technique
	// combination, 3 significant architectural change, 4 paradigm shift.
	Novelty int `json:"novelty" yaml:"novelty"`

	// Results in [0,3]: 1 matches prior best, 2 clear improvement,
	// 3 exceeds prior best by a large margin (>10%).
	Results int `json:"results" yaml:"results"`

	// Completeness in [0,3]: 0 no code, 1 code promised, 2 code link
	// provided, 3 full reproducible code with ablations.
	Completeness int `json:"completeness" yaml:"completeness"`
}

// Total returns the combined quality score in [0,10].
func (s ScoreBreakdown) Total() int {
	return s.Novelty + s.Results + s.Completeness
}

// Valid reports whether every sub-score lies within its rubric range.
func (s ScoreBreakdown) Valid() bool {
	return s.Novelty >= 0 && s.Novelty <= MaxNovelty &&
		s.Results >= 0 && s.Results <= MaxResults &&
		s.Completeness >= 0 && s.Completeness <= MaxCompleteness
}

// Insight is a scored, summarized candidate. Created by the scorer;
// the personalized reason is attached later by the hook step; immutable
// after ranking.
type Insight struct {
	Paper CandidatePaper `json:"paper" yaml:"paper"`

	Scores ScoreBreakdown `json:"scores" yaml:"scores"`

	// Summary is a one-sentence description of what the paper does.
	Summary string `json:"summary" yaml:"summary"`

	// PrimaryTopic is the paper's main subject as judged by the scorer,
	// used for the topic-match bonus during ranking.
	PrimaryTopic string `json:"primary_topic" yaml:"primary_topic"`

	// PersonalizedReason explains why the paper matters to this user.
	PersonalizedReason string `json:"personalized_reason" yaml:"personalized_reason"`
}
