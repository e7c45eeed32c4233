// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source fetches the day's candidate papers from the Hugging
// Face daily papers listing.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/paper-debrief/internal/httputil"
	"github.com/pdiddy/paper-debrief/pkg/types"
)

// dailyPapersURL is the Hugging Face daily papers endpoint. Declared as
// a var so tests can substitute an httptest server.
var dailyPapersURL = "https://huggingface.co/api/daily_papers"

// DefaultMaxPapers is the candidate pool size per run.
const DefaultMaxPapers = 6

// Client queries the daily papers listing.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
}

// FetchDaily returns up to cfg.MaxPapers candidates for the given date
// (YYYY-MM-DD), or the latest trending papers when date is empty. An
// empty listing means "no candidates today" and is not an error.
func (c *Client) FetchDaily(ctx context.Context, date string, cfg types.SourceConfig) ([]types.CandidatePaper, error) {
	limit := cfg.MaxPapers
	if limit <= 0 {
		limit = DefaultMaxPapers
	}

	reqURL := dailyPapersURL
	if date != "" {
		params := url.Values{"date": {date}}
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTPClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("daily papers request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daily papers API returned HTTP %d", resp.StatusCode)
	}

	var listing []dailyPaperItem
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("parsing daily papers response: %w", err)
	}

	var papers []types.CandidatePaper
	for _, item := range listing {
		if len(papers) >= limit {
			break
		}
		if item.Paper.ID == "" {
			continue
		}

		upvotes := item.Upvotes
		if upvotes == 0 {
			upvotes = item.Paper.Upvotes
		}

		p := types.CandidatePaper{
			ID:       item.Paper.ID,
			Title:    item.Title,
			Abstract: item.Paper.Summary,
			Upvotes:  upvotes,
			CodeURL:  item.Paper.GithubRepo,
		}
		if p.Title == "" {
			p.Title = item.Paper.Title
		}
		if item.PublishedAt != "" {
			if t, parseErr := time.Parse(time.RFC3339, item.PublishedAt); parseErr == nil {
				p.Date = t
			}
		}

		papers = append(papers, p)
	}

	return papers, nil
}

// Daily papers API JSON structures.
type dailyPaperItem struct {
	Title       string          `json:"title"`
	Upvotes     int             `json:"upvotes"`
	PublishedAt string          `json:"publishedAt"`
	Paper       dailyPaperInner `json:"paper"`
}

type dailyPaperInner struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Upvotes    int    `json:"upvotes"`
	GithubRepo string `json:"githubRepo"`
}
