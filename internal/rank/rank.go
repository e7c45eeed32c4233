// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank blends quality, relevance, and topic bonuses into a
// priority score and assembles the final ordered cards.
package rank

import (
	"sort"
	"strings"

	"github.com/pdiddy/paper-debrief/pkg/types"
)

// Defaults for the ranking stage.
const (
	DefaultTopK       = 3
	DefaultTopicBonus = 5.0
)

// relevanceWeight scales relevance into the same range as the quality
// total in the priority formula.
const relevanceWeight = 20.0

// Candidate is a scored, relevance-matched paper entering the ranker.
type Candidate struct {
	Insight   types.Insight
	Relevance float64
}

// Rank orders candidates by priority and returns the top K as cards.
// priority = quality total + relevance*20 + topic bonus. Ties break by
// higher relevance, then by input order (the sort is stable), so the
// same inputs always produce the same output.
func Rank(candidates []Candidate, intent types.UserIntent, topK int, topicBonus float64) []types.RankedCard {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topicBonus <= 0 {
		topicBonus = DefaultTopicBonus
	}

	type scored struct {
		Candidate
		priority   float64
		topicMatch bool
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		match := topicMatches(c.Insight.PrimaryTopic, intent.Topics)
		priority := float64(c.Insight.Scores.Total()) + c.Relevance*relevanceWeight
		if match {
			priority += topicBonus
		}
		ranked = append(ranked, scored{Candidate: c, priority: priority, topicMatch: match})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].priority != ranked[j].priority {
			return ranked[i].priority > ranked[j].priority
		}
		return ranked[i].Relevance > ranked[j].Relevance
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	cards := make([]types.RankedCard, 0, len(ranked))
	for i, r := range ranked {
		cards = append(cards, buildCard(i+1, r.Insight, r.Relevance, r.priority, r.topicMatch))
	}
	return cards
}

// topicMatches reports whether the paper's primary topic exactly equals
// one of the user's stated topics, ignoring case and surrounding space.
func topicMatches(primary string, topics []string) bool {
	p := strings.ToLower(strings.TrimSpace(primary))
	if p == "" {
		return false
	}
	for _, t := range topics {
		if p == strings.ToLower(strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

// buildCard derives the badges and display metrics for one ranked paper.
func buildCard(rank int, insight types.Insight, relevance, priority float64, topicMatch bool) types.RankedCard {
	var badges []string
	if rank == 1 {
		badges = append(badges, types.BadgeTopPick)
	}
	if topicMatch {
		badges = append(badges, types.BadgeTopicMatch)
	}
	if insight.Scores.Completeness == types.MaxCompleteness {
		badges = append(badges, types.BadgeReproducible)
	}
	if insight.Scores.Results == types.MaxResults {
		badges = append(badges, types.BadgeSOTABeat)
	}
	if insight.Scores.Novelty == types.MaxNovelty {
		badges = append(badges, types.BadgeNewArch)
	}

	return types.RankedCard{
		Rank:               rank,
		ID:                 insight.Paper.ID,
		Title:              insight.Paper.Title,
		Summary:            insight.Summary,
		PersonalizedReason: insight.PersonalizedReason,
		Badges:             badges,
		Scores:             insight.Scores,
		NoveltyPct:         insight.Scores.Novelty * 100 / types.MaxNovelty,
		ResultsPct:         insight.Scores.Results * 100 / types.MaxResults,
		CompletenessPct:    insight.Scores.Completeness * 100 / types.MaxCompleteness,
		Relevance:          relevance,
		Priority:           priority,
		ReadLink:           insight.Paper.ReadLink(),
	}
}
