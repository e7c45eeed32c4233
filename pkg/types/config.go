// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-debrief/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the daily paper source.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPapers is the size of the candidate pool fetched per run (default 6).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`
}

// AIConfig holds settings for the reasoning service.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// EmbeddingConfig holds settings for the embedding service.
type EmbeddingConfig struct {
	// BaseURL is the OpenAI-compatible API base (default "https://api.openai.com/v1").
	// Point it at a local server (e.g. Ollama) for offline runs.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the embedding model identifier (default "text-embedding-3-small").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key, if the endpoint requires one.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the per-request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ArchiveConfig holds settings for the dedup archive.
type ArchiveConfig struct {
	// Dir is the directory holding the archive database (default "data").
	Dir string `json:"dir" yaml:"dir"`

	// DuplicateThreshold is the cosine similarity at or above which a
	// candidate is treated as already seen (default 0.90).
	DuplicateThreshold float64 `json:"duplicate_threshold" yaml:"duplicate_threshold"`
}

// ScoringConfig holds settings for the quality gate.
type ScoringConfig struct {
	// MinTotal is the quality cutoff: papers scoring below it are
	// rejected (default 6). Operator-configurable; the rubric is not.
	MinTotal int `json:"min_total" yaml:"min_total"`
}

// RankingConfig holds settings for relevance gating and final ranking.
type RankingConfig struct {
	// TopK is the number of cards in the briefing (default 3).
	TopK int `json:"top_k" yaml:"top_k"`

	// MinRelevance drops papers whose relevance is at or below it (default 0.2).
	MinRelevance float64 `json:"min_relevance" yaml:"min_relevance"`

	// TopicBonus is added to priority on an exact topic match (default 5).
	TopicBonus float64 `json:"topic_bonus" yaml:"topic_bonus"`
}

// ReportConfig holds settings for briefing output.
type ReportConfig struct {
	// OutputDir is the directory for briefing files (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// SkipHTML disables HTML report generation.
	SkipHTML bool `json:"skip_html" yaml:"skip_html"`
}

// PipelineConfig groups all stage configurations for one briefing run.
type PipelineConfig struct {
	Source    SourceConfig    `json:"source" yaml:"source"`
	Reasoning AIConfig        `json:"reasoning" yaml:"reasoning"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive"`
	Scoring   ScoringConfig   `json:"scoring" yaml:"scoring"`
	Ranking   RankingConfig   `json:"ranking" yaml:"ranking"`
	Report    ReportConfig    `json:"report" yaml:"report"`
}
