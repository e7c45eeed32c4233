// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-debrief/pkg/types"
)

// mockEmbedder returns canned vectors keyed by input text, falling back
// to a default vector.
type mockEmbedder struct {
	vectors map[string][]float64
	def     []float64
	err     error
	calls   int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return m.def, nil
}

func testIntent() types.UserIntent {
	return types.UserIntent{
		Topics:           []string{"retrieval-augmented generation"},
		NegativeKeywords: []string{"image generation"},
	}
}

func TestEvaluateSimilarity(t *testing.T) {
	intent := testIntent()
	paper := types.CandidatePaper{ID: "P1", Title: "RAG paper", Abstract: "We retrieve."}

	tests := []struct {
		name      string
		intentVec []float64
		paperVec  []float64
		want      float64
	}{
		{"identical direction", []float64{1, 0}, []float64{1, 0}, 1.0},
		{"opposite direction", []float64{1, 0}, []float64{-1, 0}, 0.0},
		{"orthogonal maps to middle", []float64{1, 0}, []float64{0, 1}, 0.5},
		{"zero paper vector is relevance zero", []float64{1, 0}, []float64{0, 0}, 0.0},
		{"zero intent vector is relevance zero", []float64{0, 0}, []float64{1, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Matcher{Embedder: &mockEmbedder{
				vectors: map[string][]float64{
					intentText(intent):                tt.intentVec,
					paper.Title + "\n" + paper.Abstract: tt.paperVec,
				},
			}}
			got, err := m.Evaluate(context.Background(), intent, paper)
			require.NoError(t, err)
			assert.False(t, got.Excluded)
			assert.InDelta(t, tt.want, got.Score, 1e-9)
			assert.GreaterOrEqual(t, got.Score, 0.0)
			assert.LessOrEqual(t, got.Score, 1.0)
		})
	}
}

func TestEvaluateNegativeKeywordVeto(t *testing.T) {
	// The veto fires before any embedding happens, regardless of how
	// relevant the paper would have scored.
	emb := &mockEmbedder{def: []float64{1, 0}}
	m := &Matcher{Embedder: emb}

	paper := types.CandidatePaper{
		ID:       "P1",
		Title:    "Diffusion Models",
		Abstract: "A new approach to Image Generation with transformers.",
	}

	got, err := m.Evaluate(context.Background(), testIntent(), paper)
	require.NoError(t, err)
	assert.True(t, got.Excluded)
	assert.Equal(t, "image generation", got.MatchedKeyword)
	assert.Zero(t, emb.calls, "veto must not cost an embedding call")
}

func TestEvaluateKeywordMatchIsCaseInsensitive(t *testing.T) {
	m := &Matcher{Embedder: &mockEmbedder{def: []float64{1, 0}}}
	intent := types.UserIntent{
		Topics:           []string{"nlp"},
		NegativeKeywords: []string{"IMAGE GENERATION"},
	}
	paper := types.CandidatePaper{ID: "P1", Title: "image generation at scale"}

	got, err := m.Evaluate(context.Background(), intent, paper)
	require.NoError(t, err)
	assert.True(t, got.Excluded)
}

func TestEvaluateCachesIntentEmbedding(t *testing.T) {
	emb := &mockEmbedder{def: []float64{1, 0}}
	m := &Matcher{Embedder: emb}
	intent := types.UserIntent{Topics: []string{"rag"}}

	for i := 0; i < 3; i++ {
		_, err := m.Evaluate(context.Background(), intent, types.CandidatePaper{ID: "P", Title: "t"})
		require.NoError(t, err)
	}
	// One intent embedding plus one per paper.
	assert.Equal(t, 4, emb.calls)
}

func TestEvaluateEmbedderErrorPropagates(t *testing.T) {
	m := &Matcher{Embedder: &mockEmbedder{err: errors.New("embedder down")}}
	_, err := m.Evaluate(context.Background(), types.UserIntent{Topics: []string{"x"}}, types.CandidatePaper{ID: "P"})
	require.Error(t, err)
}
