// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a briefing for the terminal and writes the
// JSON, YAML, and HTML artifacts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-debrief/pkg/types"
)

// WriteJSON writes the briefing as indented JSON.
func WriteJSON(w io.Writer, b types.Briefing) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding briefing JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the briefing as YAML.
func WriteYAML(w io.Writer, b types.Briefing) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding briefing YAML: %w", err)
	}
	return enc.Close()
}

// WriteText renders the briefing for a terminal.
func WriteText(w io.Writer, b types.Briefing) error {
	date := b.Date
	if date == "" {
		date = "latest"
	}
	fmt.Fprintf(w, "Daily Debrief (%s)\n", date)

	if len(b.Cards) == 0 {
		fmt.Fprintln(w, "No papers made the cut today.")
		return nil
	}

	for _, card := range b.Cards {
		fmt.Fprintf(w, "\n%d. %s", card.Rank, card.Title)
		if len(card.Badges) > 0 {
			fmt.Fprintf(w, "  [%s]", strings.Join(card.Badges, ", "))
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "   %s\n", card.Summary)
		if card.PersonalizedReason != "" {
			fmt.Fprintf(w, "   Why you: %s\n", card.PersonalizedReason)
		}
		fmt.Fprintf(w, "   quality %d/%d  relevance %.0f%%  priority %.1f\n",
			card.Scores.Total(), types.MaxTotal, card.Relevance*100, card.Priority)
		fmt.Fprintf(w, "   %s\n", card.ReadLink)
	}
	return nil
}

// Save writes the briefing artifacts under cfg.OutputDir and returns the
// paths written. HTML is skipped when cfg.SkipHTML is set.
func Save(b types.Briefing, cfg types.ReportConfig) ([]string, error) {
	dir := cfg.OutputDir
	if dir == "" {
		dir = "output"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stem := "debrief-" + fileStem(b)

	writers := []struct {
		ext    string
		render func(io.Writer, types.Briefing) error
	}{
		{".json", WriteJSON},
		{".yaml", WriteYAML},
	}
	if !cfg.SkipHTML {
		writers = append(writers, struct {
			ext    string
			render func(io.Writer, types.Briefing) error
		}{".html", WriteHTML})
	}

	var paths []string
	for _, wr := range writers {
		path := filepath.Join(dir, stem+wr.ext)
		if err := writeFile(path, b, wr.render); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, b types.Briefing, render func(io.Writer, types.Briefing) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fileStem names output files after the listing date, falling back to
// the generation date for "latest" runs.
func fileStem(b types.Briefing) string {
	if b.Date != "" {
		return b.Date
	}
	if len(b.GeneratedAt) >= len("2006-01-02") {
		return b.GeneratedAt[:len("2006-01-02")]
	}
	return "latest"
}
