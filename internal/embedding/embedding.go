// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embedding maps text to fixed-length vectors via an
// OpenAI-compatible embeddings endpoint and provides the cosine
// similarity used for deduplication and relevance.
package embedding

import (
	"context"
	"math"
)

// Embedder maps a string to a fixed-dimension vector. Implementations
// must be deterministic for identical input.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Cosine returns the cosine similarity of a and b in [-1,1]. A zero or
// empty vector on either side yields 0 rather than an error: degenerate
// input means "no signal", not a failure.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
