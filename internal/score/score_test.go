// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-debrief/pkg/types"
)

type mockService struct {
	response string
	err      error
}

func (m *mockService) Complete(_ context.Context, _ string) (string, error) {
	return m.response, m.err
}

func judgmentJSON(novelty, results, completeness int) string {
	return fmt.Sprintf(
		`{"summary": "does a thing", "primary_topic": "retrieval", "novelty": %d, "results": %d, "completeness": %d}`,
		novelty, results, completeness)
}

func testPaper() types.CandidatePaper {
	return types.CandidatePaper{ID: "2401.00001", Title: "A Paper", Abstract: "We do a thing."}
}

func TestScoreAccepted(t *testing.T) {
	s := &Scorer{Service: &mockService{response: judgmentJSON(3, 2, 2)}}

	insight, err := s.Score(context.Background(), types.UserIntent{Topics: []string{"retrieval"}}, testPaper())
	require.NoError(t, err)

	assert.Equal(t, 7, insight.Scores.Total())
	assert.Equal(t, "does a thing", insight.Summary)
	assert.Equal(t, "retrieval", insight.PrimaryTopic)
}

func TestScoreTotalIsAlwaysSumOfParts(t *testing.T) {
	for novelty := 0; novelty <= types.MaxNovelty; novelty++ {
		for results := 0; results <= types.MaxResults; results++ {
			for completeness := 0; completeness <= types.MaxCompleteness; completeness++ {
				b := types.ScoreBreakdown{Novelty: novelty, Results: results, Completeness: completeness}
				assert.True(t, b.Valid())
				assert.Equal(t, novelty+results+completeness, b.Total())
				assert.GreaterOrEqual(t, b.Total(), 0)
				assert.LessOrEqual(t, b.Total(), types.MaxTotal)
			}
		}
	}
}

func TestScoreLowQualityRejected(t *testing.T) {
	tests := []struct {
		name                          string
		novelty, results, completeness int
	}{
		{"total 2", 1, 1, 0},
		{"total 5 boundary", 2, 2, 1},
		{"total 5 different mix", 4, 1, 0},
		{"total 0", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scorer{Service: &mockService{response: judgmentJSON(tt.novelty, tt.results, tt.completeness)}}
			_, err := s.Score(context.Background(), types.UserIntent{}, testPaper())
			assert.ErrorIs(t, err, ErrLowQuality)
		})
	}
}

func TestScoreExactlyAtCutoffAccepted(t *testing.T) {
	s := &Scorer{Service: &mockService{response: judgmentJSON(2, 2, 2)}}
	insight, err := s.Score(context.Background(), types.UserIntent{}, testPaper())
	require.NoError(t, err)
	assert.Equal(t, 6, insight.Scores.Total())
}

func TestScoreConfigurableCutoff(t *testing.T) {
	s := &Scorer{Service: &mockService{response: judgmentJSON(2, 1, 1)}, MinTotal: 4}
	insight, err := s.Score(context.Background(), types.UserIntent{}, testPaper())
	require.NoError(t, err)
	assert.Equal(t, 4, insight.Scores.Total())
}

func TestScoreUnscoreable(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not JSON", "this paper is great, trust me"},
		{"novelty above range", judgmentJSON(5, 2, 2)},
		{"results above range", judgmentJSON(2, 4, 2)},
		{"completeness above range", judgmentJSON(2, 2, 4)},
		{"negative sub-score", judgmentJSON(-1, 3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scorer{Service: &mockService{response: tt.response}}
			_, err := s.Score(context.Background(), types.UserIntent{}, testPaper())
			assert.ErrorIs(t, err, ErrUnscoreable)
			assert.NotErrorIs(t, err, ErrLowQuality,
				"unscoreable must stay distinct from a low score")
		})
	}
}

func TestScoreServiceErrorPropagates(t *testing.T) {
	s := &Scorer{Service: &mockService{err: errors.New("model unreachable")}}
	_, err := s.Score(context.Background(), types.UserIntent{}, testPaper())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnscoreable)
}

func TestScoreIgnoresModelClaimedTotal(t *testing.T) {
	// The model reports sub-scores only; the total is computed locally,
	// so an inflated "score" field in the response changes nothing.
	resp := `{"summary": "s", "primary_topic": "t", "novelty": 1, "results": 1, "completeness": 1, "score": 10}`
	s := &Scorer{Service: &mockService{response: resp}}
	_, err := s.Score(context.Background(), types.UserIntent{}, testPaper())
	assert.ErrorIs(t, err, ErrLowQuality)
}
