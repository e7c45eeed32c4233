// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists the papers already surfaced to the user and
// answers duplicate queries against them. The store is a SQLite database
// opened for the run and written as each paper is accepted, so history
// survives even if a later stage fails.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-debrief/internal/embedding"
	"github.com/pdiddy/paper-debrief/pkg/types"
)

const dbFile = "archive.db"

// DefaultDuplicateThreshold is the cosine similarity at or above which a
// candidate is treated as already seen. The boundary is inclusive.
const DefaultDuplicateThreshold = 0.90

// Entry is one archived paper. Entries accumulate across runs and are
// upserted by identifier, never deleted within a run.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Embedding []float64 `json:"-"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	RunID     string    `json:"run_id"`
}

// Store is the durable dedup archive. Only the orchestrator goroutine
// mutates it within a run.
type Store struct {
	db        *sql.DB
	threshold float64
}

// Open opens or creates the archive database at cfg.Dir/archive.db. A
// corrupt existing database is moved aside and replaced with a fresh
// empty one, with a warning on w: losing dedup history is acceptable,
// losing the ability to run is not.
func Open(cfg types.ArchiveConfig, w io.Writer) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	threshold := cfg.DuplicateThreshold
	if threshold <= 0 {
		threshold = DefaultDuplicateThreshold
	}

	dbPath := filepath.Join(dir, dbFile)

	db, err := openAndMigrate(dbPath)
	if err != nil {
		// Corrupt or unreadable store: move it aside and start empty.
		aside := dbPath + ".corrupt"
		fmt.Fprintf(w, "warning: archive unreadable (%v); starting with empty archive, old file moved to %s\n", err, aside)
		os.Rename(dbPath, aside)

		db, err = openAndMigrate(dbPath)
		if err != nil {
			return nil, fmt.Errorf("recreating archive: %w", err)
		}
	}

	return &Store{db: db, threshold: threshold}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func openAndMigrate(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT,
		embedding TEXT NOT NULL,
		first_seen TEXT NOT NULL,
		last_seen TEXT NOT NULL,
		run_id TEXT
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}

// IsDuplicate reports whether the paper identified by id with the given
// embedding has already been surfaced, along with the highest cosine
// similarity found. A candidate is a duplicate when its identifier
// matches a stored entry exactly, or when similarity reaches the
// threshold (inclusive). The scan is linear over all stored embeddings;
// the archive stays small enough that no index is needed.
func (s *Store) IsDuplicate(ctx context.Context, id string, vec []float64) (bool, float64, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM entries WHERE id = ?`, id,
	).Scan(&exists)
	if err != nil {
		return false, 0, fmt.Errorf("checking identifier: %w", err)
	}

	maxSim, err := s.maxSimilarity(ctx, vec)
	if err != nil {
		return false, 0, err
	}

	if exists > 0 {
		return true, maxSim, nil
	}
	return maxSim >= s.threshold, maxSim, nil
}

// maxSimilarity scans every stored embedding and returns the highest
// cosine similarity to vec.
func (s *Store) maxSimilarity(ctx context.Context, vec []float64) (float64, error) {
	if len(vec) == 0 {
		return 0, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT embedding FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("scanning embeddings: %w", err)
	}
	defer rows.Close()

	var maxSim float64
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return 0, fmt.Errorf("scanning row: %w", err)
		}

		var stored []float64
		if err := json.Unmarshal([]byte(encoded), &stored); err != nil {
			// A single undecodable embedding should not poison the run.
			continue
		}

		if sim := embedding.Cosine(vec, stored); sim > maxSim {
			maxSim = sim
		}
	}
	return maxSim, rows.Err()
}

// Record upserts an entry by identifier. Recording the same identifier
// twice updates last_seen and run_id but preserves first_seen, so the
// operation is idempotent.
func (s *Store) Record(ctx context.Context, e Entry) error {
	encoded, err := json.Marshal(e.Embedding)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}

	now := time.Now().UTC()
	firstSeen := e.FirstSeen
	if firstSeen.IsZero() {
		firstSeen = now
	}
	lastSeen := e.LastSeen
	if lastSeen.IsZero() {
		lastSeen = now
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries (id, title, summary, embedding, first_seen, last_seen, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			last_seen=excluded.last_seen, run_id=excluded.run_id`,
		e.ID, e.Title, e.Summary, string(encoded),
		firstSeen.Format(time.RFC3339Nano), lastSeen.Format(time.RFC3339Nano), e.RunID,
	)
	if err != nil {
		return fmt.Errorf("recording entry %s: %w", e.ID, err)
	}
	return nil
}

// List returns entries ordered by most recently seen. A limit of zero
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT id, title, summary, first_seen, last_seen, run_id FROM entries ORDER BY last_seen DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                   Entry
			firstSeen, lastSeen string
			summary, runID      sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Title, &summary, &firstSeen, &lastSeen, &runID); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.Summary = summary.String
		e.RunID = runID.String
		e.FirstSeen, _ = time.Parse(time.RFC3339Nano, firstSeen)
		e.LastSeen, _ = time.Parse(time.RFC3339Nano, lastSeen)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats summarizes the archive contents.
type Stats struct {
	Entries  int
	Earliest time.Time
	Latest   time.Time
}

// Stat returns summary statistics for the archive.
func (s *Store) Stat(ctx context.Context) (Stats, error) {
	var (
		st               Stats
		earliest, latest sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*), min(first_seen), max(last_seen) FROM entries`,
	).Scan(&st.Entries, &earliest, &latest)
	if err != nil {
		return Stats{}, fmt.Errorf("querying stats: %w", err)
	}

	if earliest.Valid {
		st.Earliest, _ = time.Parse(time.RFC3339Nano, earliest.String)
	}
	if latest.Valid {
		st.Latest, _ = time.Parse(time.RFC3339Nano, latest.String)
	}
	return st, nil
}
