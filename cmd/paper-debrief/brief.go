// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-debrief/internal/archive"
	"github.com/pdiddy/paper-debrief/internal/embedding"
	"github.com/pdiddy/paper-debrief/internal/intent"
	"github.com/pdiddy/paper-debrief/internal/pipeline"
	"github.com/pdiddy/paper-debrief/internal/reasoning"
	"github.com/pdiddy/paper-debrief/internal/report"
	"github.com/pdiddy/paper-debrief/internal/source"
	"github.com/pdiddy/paper-debrief/pkg/types"
)

var briefCmd = &cobra.Command{
	Use:   "brief [prompt]",
	Short: "Generate today's personalized paper briefing",
	Long: `Brief runs the full pipeline: extracts your intent from the prompt (or a
saved profile), fetches the day's papers, filters duplicates against the
archive, grades quality against the rubric, applies negative-keyword and
relevance gates, and ranks the survivors into a short briefing.

Weekend dates slide to the preceding Friday, since the listing only
covers business days. A run where no paper makes the cut is a successful
run: the briefing simply has zero cards.`,
	RunE: runBrief,
}

func runBrief(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rawDate, _ := cmd.Flags().GetString("date")
	date, err := source.ResolveDate(rawDate)
	if err != nil {
		return err
	}
	if date != rawDate && rawDate != "" {
		fmt.Fprintf(os.Stderr, "weekend date %s resolved to %s\n", rawDate, date)
	}

	opts := pipeline.Options{Date: date}

	profilePath, _ := cmd.Flags().GetString("profile")
	if profilePath != "" {
		profile, err := intent.LoadProfile(profilePath)
		if err != nil {
			return err
		}
		opts.Intent = &profile
	} else {
		opts.Prompt = promptFromFlags(cmd, args)
		if opts.Prompt == "" {
			return fmt.Errorf("a prompt or --profile is required: tell me what you work on")
		}
	}

	cfg := pipelineConfig(cmd)

	store, err := archive.Open(cfg.Archive, os.Stderr)
	if err != nil {
		return err
	}
	defer store.Close()

	p := &pipeline.Pipeline{
		Source: &source.Client{
			HTTPClient: &http.Client{Timeout: cfg.Source.Timeout},
			UserAgent:  cfg.Source.UserAgent,
		},
		Reasoner: &reasoning.Client{
			APIKey:     loadedSecrets.Get("anthropic-api-key", cfg.Reasoning.APIKey),
			Model:      cfg.Reasoning.Model,
			MaxRetries: cfg.Reasoning.MaxRetries,
			HTTPClient: &http.Client{Timeout: 120 * time.Second},
		},
		Embedder: embedding.NewClient(cfg.Embedding),
		Archive:  store,
		Config:   cfg,
	}

	briefing, summary, err := p.Run(ctx, opts, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "run %s: %d fetched, %d duplicate, %d low-quality, %d unscoreable, %d excluded, %d irrelevant, %d accepted\n",
		briefing.RunID, summary.Fetched, summary.Duplicates, summary.LowQuality,
		summary.Unscoreable, summary.Excluded, summary.Irrelevant, summary.Accepted)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if err := report.WriteJSON(os.Stdout, briefing); err != nil {
			return err
		}
	} else {
		if err := report.WriteText(os.Stdout, briefing); err != nil {
			return err
		}
	}

	paths, err := report.Save(briefing, cfg.Report)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", strings.Join(paths, ", "))
	return nil
}

// promptFromFlags prefers --prompt, falling back to positional args.
func promptFromFlags(cmd *cobra.Command, args []string) string {
	prompt, _ := cmd.Flags().GetString("prompt")
	if prompt == "" && len(args) > 0 {
		prompt = strings.Join(args, " ")
	}
	return strings.TrimSpace(prompt)
}

// pipelineConfig assembles the run configuration. Flags win over config
// file values; config file values win over built-in defaults.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	maxPapers, _ := cmd.Flags().GetInt("max-papers")
	topK, _ := cmd.Flags().GetInt("top")
	minScore, _ := cmd.Flags().GetInt("min-score")
	dbDir, _ := cmd.Flags().GetString("db-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	noHTML, _ := cmd.Flags().GetBool("no-html")
	model, _ := cmd.Flags().GetString("model")

	cfg := types.PipelineConfig{
		Source: types.SourceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "paper-debrief/" + version,
			},
			MaxPapers: intOr(maxPapers, viper.GetInt("source.max_papers"), source.DefaultMaxPapers),
		},
		Reasoning: types.AIConfig{
			Model:      stringOr(model, viper.GetString("reasoning.model"), "claude-sonnet-4-5-20250929"),
			APIKey:     viper.GetString("reasoning.api_key"),
			MaxRetries: intOr(0, viper.GetInt("reasoning.max_retries"), 3),
		},
		Embedding: types.EmbeddingConfig{
			BaseURL: viper.GetString("embedding.base_url"),
			Model:   viper.GetString("embedding.model"),
			APIKey:  loadedSecrets.Get("embeddings-api-key", viper.GetString("embedding.api_key")),
		},
		Archive: types.ArchiveConfig{
			Dir:                stringOr(dbDir, viper.GetString("archive.dir"), "data"),
			DuplicateThreshold: viper.GetFloat64("archive.duplicate_threshold"),
		},
		Scoring: types.ScoringConfig{
			MinTotal: intOr(minScore, viper.GetInt("scoring.min_total"), 0),
		},
		Ranking: types.RankingConfig{
			TopK:         intOr(topK, viper.GetInt("ranking.top_k"), 0),
			MinRelevance: viper.GetFloat64("ranking.min_relevance"),
			TopicBonus:   viper.GetFloat64("ranking.topic_bonus"),
		},
		Report: types.ReportConfig{
			OutputDir: stringOr(outputDir, viper.GetString("report.output_dir"), "output"),
			SkipHTML:  noHTML || viper.GetBool("report.skip_html"),
		},
	}
	return cfg
}

// stringOr returns the first non-empty value.
func stringOr(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// intOr returns the first positive value.
func intOr(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func init() {
	briefCmd.Flags().String("prompt", "", "free-text description of what you work on")
	briefCmd.Flags().String("profile", "", "YAML profile file with a saved intent (skips extraction)")
	briefCmd.Flags().String("date", "", "paper listing date (YYYY-MM-DD, default: latest)")
	briefCmd.Flags().Int("max-papers", 0, "candidate pool size (default 6)")
	briefCmd.Flags().Int("top", 0, "number of cards in the briefing (default 3)")
	briefCmd.Flags().Int("min-score", 0, "quality cutoff, papers scoring below are rejected (default 6)")
	briefCmd.Flags().String("model", "", "reasoning model identifier")
	briefCmd.Flags().String("db-dir", "", "directory for the dedup archive (default data)")
	briefCmd.Flags().String("output-dir", "", "directory for briefing files (default output)")
	briefCmd.Flags().Bool("no-html", false, "skip the HTML report")
	briefCmd.Flags().Bool("json", false, "print the briefing as JSON instead of text")

	rootCmd.AddCommand(briefCmd)
}
