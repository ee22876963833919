// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the domain finder:
// institution input rows, search results, scored candidates, resolution
// outcomes, and the typed run configuration.
package types

import "strings"

// SearchResultItem is one result returned by the keyword-search service.
// A single query yields at most ten of these, in the service's relevance order.
type SearchResultItem struct {
	// URL is the full result link (e.g. "https://exampleathletics.com/staff").
	URL string `json:"url" yaml:"url"`

	// Title is the result page title as returned by the service.
	Title string `json:"title" yaml:"title"`

	// Snippet is the short text excerpt returned by the service.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Candidate is a search result after scoring. Reasons records every rule that
// fired, in rule order, so the decision can be audited later.
type Candidate struct {
	// Domain is the normalized host: lowercased, port removed, "www." stripped.
	Domain string `json:"domain" yaml:"domain"`

	// Score is the additive score, or RejectScore when a hard rule fired.
	Score int `json:"score" yaml:"score"`

	// Reasons lists the rationale for the score in the order rules were applied.
	Reasons []string `json:"reasons" yaml:"reasons"`

	// Rejected is true when a hard rule forced Score to RejectScore.
	Rejected bool `json:"rejected,omitempty" yaml:"rejected,omitempty"`

	URL     string `json:"url" yaml:"url"`
	Title   string `json:"title" yaml:"title"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Reason joins the rationale entries into a single audit string.
func (c Candidate) Reason() string {
	return strings.Join(c.Reasons, "; ")
}
