// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences one briefing run: intent extraction,
// candidate fetch, duplicate check, quality scoring, relevance matching,
// ranking, and archive updates.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/paper-debrief/internal/archive"
	"github.com/pdiddy/paper-debrief/internal/embedding"
	"github.com/pdiddy/paper-debrief/internal/intent"
	"github.com/pdiddy/paper-debrief/internal/rank"
	"github.com/pdiddy/paper-debrief/internal/reasoning"
	"github.com/pdiddy/paper-debrief/internal/relevance"
	"github.com/pdiddy/paper-debrief/internal/score"
	"github.com/pdiddy/paper-debrief/pkg/types"
)

// PaperSource supplies the day's candidate papers.
type PaperSource interface {
	FetchDaily(ctx context.Context, date string, cfg types.SourceConfig) ([]types.CandidatePaper, error)
}

// Pipeline holds the collaborators for a briefing run. The archive is
// mutated only from Run's goroutine.
type Pipeline struct {
	Source   PaperSource
	Reasoner reasoning.Service
	Embedder embedding.Embedder
	Archive  *archive.Store
	Config   types.PipelineConfig
}

// Options selects what one run evaluates.
type Options struct {
	// Prompt is the user's free-text research interests. Ignored when
	// Intent is set.
	Prompt string

	// Intent is a pre-built intent (from a profile file), bypassing
	// extraction.
	Intent *types.UserIntent

	// Date is the listing date (YYYY-MM-DD, already weekend-resolved),
	// empty for the latest papers.
	Date string
}

// Summary counts per-paper outcomes for one run.
type Summary struct {
	Fetched     int
	Duplicates  int
	LowQuality  int
	Unscoreable int
	Excluded    int
	Irrelevant  int
	Accepted    int
}

// Run executes the full pipeline and returns the briefing. Per-paper
// failures (a low score, unparsable model output, an excluded keyword)
// are counted and logged to w but never abort the run; resource-level
// failures (source, model, embedder, or store unavailable) do. A run
// that filters out every candidate succeeds with zero cards.
func (p *Pipeline) Run(ctx context.Context, opts Options, w io.Writer) (types.Briefing, Summary, error) {
	runID := uuid.NewString()
	var summary Summary

	userIntent, err := p.resolveIntent(ctx, opts)
	if err != nil {
		return types.Briefing{}, summary, err
	}
	fmt.Fprintf(w, "intent: topics=%v negatives=%v\n", userIntent.Topics, userIntent.NegativeKeywords)

	candidates, err := p.Source.FetchDaily(ctx, opts.Date, p.Config.Source)
	if err != nil {
		return types.Briefing{}, summary, fmt.Errorf("fetching candidates: %w", err)
	}
	summary.Fetched = len(candidates)
	fmt.Fprintf(w, "fetched %d candidate(s)\n", len(candidates))

	scorer := &score.Scorer{Service: p.Reasoner, MinTotal: p.Config.Scoring.MinTotal}
	matcher := &relevance.Matcher{Embedder: p.Embedder}

	minRelevance := p.Config.Ranking.MinRelevance
	if minRelevance <= 0 {
		minRelevance = relevance.DefaultMinRelevance
	}

	var pool []rank.Candidate

	for _, paper := range candidates {
		select {
		case <-ctx.Done():
			return types.Briefing{}, summary, ctx.Err()
		default:
		}

		vec, err := p.Embedder.Embed(ctx, paper.Title+"\n"+paper.Abstract)
		if err != nil {
			return types.Briefing{}, summary, fmt.Errorf("embedding %s: %w", paper.ID, err)
		}

		// Duplicate check comes first: an already-seen paper never
		// costs a scoring call.
		dup, sim, err := p.Archive.IsDuplicate(ctx, paper.ID, vec)
		if err != nil {
			return types.Briefing{}, summary, fmt.Errorf("checking archive: %w", err)
		}
		if dup {
			fmt.Fprintf(w, "duplicate %s (similarity %.2f)\n", paper.ID, sim)
			summary.Duplicates++
			continue
		}

		insight, err := scorer.Score(ctx, userIntent, paper)
		switch {
		case errors.Is(err, score.ErrLowQuality):
			fmt.Fprintf(w, "rejected %s: quality %d below cutoff\n", paper.ID, insight.Scores.Total())
			summary.LowQuality++
			continue
		case errors.Is(err, score.ErrUnscoreable):
			fmt.Fprintf(w, "rejected %s: unscoreable\n", paper.ID)
			summary.Unscoreable++
			continue
		case err != nil:
			return types.Briefing{}, summary, err
		}

		match, err := matcher.Evaluate(ctx, userIntent, paper)
		if err != nil {
			return types.Briefing{}, summary, err
		}
		if match.Excluded {
			fmt.Fprintf(w, "excluded %s: negative keyword %q\n", paper.ID, match.MatchedKeyword)
			summary.Excluded++
			continue
		}
		if match.Score <= minRelevance {
			fmt.Fprintf(w, "rejected %s: relevance %.2f too low\n", paper.ID, match.Score)
			summary.Irrelevant++
			continue
		}

		insight.PersonalizedReason = p.personalize(ctx, userIntent, insight)

		// Record is the terminal step per accepted paper, so history
		// survives even if a later stage fails.
		err = p.Archive.Record(ctx, archive.Entry{
			ID:        paper.ID,
			Title:     paper.Title,
			Summary:   insight.Summary,
			Embedding: vec,
			RunID:     runID,
		})
		if err != nil {
			return types.Briefing{}, summary, fmt.Errorf("recording %s: %w", paper.ID, err)
		}

		summary.Accepted++
		fmt.Fprintf(w, "accepted %s: quality %d, relevance %.2f\n",
			paper.ID, insight.Scores.Total(), match.Score)

		pool = append(pool, rank.Candidate{Insight: insight, Relevance: match.Score})
	}

	cards := rank.Rank(pool, userIntent, p.Config.Ranking.TopK, p.Config.Ranking.TopicBonus)
	fmt.Fprintf(w, "briefing: %d card(s) from %d accepted\n", len(cards), summary.Accepted)

	briefing := types.Briefing{
		RunID:       runID,
		Date:        opts.Date,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Intent:      userIntent,
		Cards:       cards,
	}
	return briefing, summary, nil
}

// resolveIntent uses the pre-built intent when given, otherwise extracts
// one from the prompt.
func (p *Pipeline) resolveIntent(ctx context.Context, opts Options) (types.UserIntent, error) {
	if opts.Intent != nil {
		if opts.Intent.IsEmpty() {
			return types.UserIntent{}, fmt.Errorf("intent has no topics or pain points")
		}
		return *opts.Intent, nil
	}
	return intent.Extract(ctx, p.Reasoner, opts.Prompt)
}
