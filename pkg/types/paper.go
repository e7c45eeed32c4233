// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-debrief pipeline.
package types

import "time"

// CandidatePaper is a paper under consideration for one briefing run,
// as returned by the daily paper source. Read-only within the pipeline.
type CandidatePaper struct {
	// ID is the stable catalog identifier (e.g. an arXiv ID like "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract or summary text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Date is the publication or listing date.
	Date time.Time `json:"date" yaml:"date"`

	// Upvotes is the community upvote count at fetch time.
	Upvotes int `json:"upvotes" yaml:"upvotes"`

	// CodeURL is an optional link to a code repository, empty if none.
	CodeURL string `json:"code_url,omitempty" yaml:"code_url,omitempty"`
}

// ReadLink returns the canonical reader-facing URL for the paper.
func (p CandidatePaper) ReadLink() string {
	return "https://huggingface.co/papers/" + p.ID
}
