// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-debrief/pkg/types"
)

func openTestStore(t *testing.T, cfg types.ArchiveConfig) *Store {
	t.Helper()
	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}
	s, err := Open(cfg, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t, types.ArchiveConfig{})
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{
		ID: "P1", Title: "First", Summary: "does a thing",
		Embedding: []float64{1, 0}, RunID: "run-1",
	}))
	require.NoError(t, s.Record(ctx, Entry{
		ID: "P2", Title: "Second", Embedding: []float64{0, 1}, RunID: "run-1",
	}))

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	st, err := s.Stat(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Entries)
	assert.False(t, st.Earliest.IsZero())
}

func TestRecordIsIdempotent(t *testing.T) {
	s := openTestStore(t, types.ArchiveConfig{})
	ctx := context.Background()

	first := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, s.Record(ctx, Entry{
		ID: "P1", Title: "Paper", Embedding: []float64{1, 0},
		FirstSeen: first, LastSeen: first, RunID: "run-1",
	}))
	require.NoError(t, s.Record(ctx, Entry{
		ID: "P1", Title: "Paper", Embedding: []float64{1, 0}, RunID: "run-2",
	}))

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1, "duplicate identifiers must not duplicate the entry")

	assert.Equal(t, "run-2", entries[0].RunID)
	assert.WithinDuration(t, first, entries[0].FirstSeen, time.Second,
		"first_seen must survive the upsert")
	assert.True(t, entries[0].LastSeen.After(entries[0].FirstSeen))
}

func TestIsDuplicateByIdentifier(t *testing.T) {
	s := openTestStore(t, types.ArchiveConfig{})
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{ID: "P123", Title: "Known", Embedding: []float64{0, 1}}))

	// Same id with a completely dissimilar embedding is still a duplicate.
	dup, _, err := s.IsDuplicate(ctx, "P123", []float64{1, 0})
	require.NoError(t, err)
	assert.True(t, dup)

	dup, _, err = s.IsDuplicate(ctx, "P999", []float64{1, 0})
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestIsDuplicateBySimilarity(t *testing.T) {
	s := openTestStore(t, types.ArchiveConfig{})
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{ID: "P1", Title: "Stored", Embedding: []float64{1, 0, 0}}))

	// Near-identical direction clears the 0.90 default threshold.
	dup, sim, err := s.IsDuplicate(ctx, "P2", []float64{10, 0.1, 0})
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Greater(t, sim, 0.99)

	// Orthogonal vector is not a duplicate.
	dup, sim, err = s.IsDuplicate(ctx, "P3", []float64{0, 1, 0})
	require.NoError(t, err)
	assert.False(t, dup)
	assert.InDelta(t, 0.0, sim, 1e-9)
}

func TestIsDuplicateThresholdInclusive(t *testing.T) {
	// Threshold 1.0 with an identical vector: cosine is exactly 1.0,
	// and similarity at the boundary counts as duplicate.
	s := openTestStore(t, types.ArchiveConfig{DuplicateThreshold: 1.0})
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{ID: "P1", Title: "Stored", Embedding: []float64{1, 0}}))

	dup, sim, err := s.IsDuplicate(ctx, "P2", []float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, sim)
	assert.True(t, dup, "similarity exactly at the threshold is a duplicate")
}

func TestIsDuplicateEmptyArchive(t *testing.T) {
	s := openTestStore(t, types.ArchiveConfig{})

	dup, sim, err := s.IsDuplicate(context.Background(), "P1", []float64{1, 0})
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Zero(t, sim)
}

func TestOpenCorruptDatabaseDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dbFile), []byte("this is not a database"), 0o644))

	var warnings bytes.Buffer
	s, err := Open(types.ArchiveConfig{Dir: dir}, &warnings)
	require.NoError(t, err, "a corrupt store must not abort the run")
	defer s.Close()

	assert.Contains(t, warnings.String(), "warning")

	dup, _, err := s.IsDuplicate(context.Background(), "P1", []float64{1, 0})
	require.NoError(t, err)
	assert.False(t, dup, "corrupt store degrades to treating every paper as new")
}

func TestStatEmptyArchive(t *testing.T) {
	s := openTestStore(t, types.ArchiveConfig{})

	st, err := s.Stat(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Entries)
	assert.True(t, st.Earliest.IsZero())
}
