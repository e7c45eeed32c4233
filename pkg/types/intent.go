// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// UserIntent is the structured extraction of a user's research interests
// from their free-text prompt. Built once per run, immutable thereafter.
type UserIntent struct {
	// Topics are the positive research interests, in extraction order.
	Topics []string `json:"topics" yaml:"topics"`

	// PainPoints are problems the user is trying to solve.
	PainPoints []string `json:"pain_points" yaml:"pain_points"`

	// NegativeKeywords name subjects the user wants excluded. A paper
	// matching any of these is vetoed regardless of relevance.
	NegativeKeywords []string `json:"negative_keywords" yaml:"negative_keywords"`
}

// IsEmpty reports whether the intent carries no positive signal.
func (u UserIntent) IsEmpty() bool {
	return len(u.Topics) == 0 && len(u.PainPoints) == 0
}
