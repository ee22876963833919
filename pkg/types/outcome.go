// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Status is the resolution status written to the output status column.
type Status string

const (
	// StatusFound means a candidate cleared the confident pass, or the domain
	// came from the override table or whitelist.
	StatusFound Status = "FOUND"

	// StatusFoundNotConfident means only the academic-domain fallback matched.
	StatusFoundNotConfident Status = "FOUND_NOT_CONFIDENT"

	// StatusNotFound means no domain was assigned.
	StatusNotFound Status = "NOT_FOUND"
)

// Resolved reports whether s assigns a domain.
func (s Status) Resolved() bool {
	return s == StatusFound || s == StatusFoundNotConfident
}

// Source identifies which step of the resolver produced an outcome.
type Source string

const (
	SourceOverride  Source = "override"
	SourceWhitelist Source = "whitelist"
	SourceSearch    Source = "search"
	SourceFallback  Source = "fallback"
)

// Scores with special meaning.
const (
	// OverrideScore is reported for override and whitelist matches.
	OverrideScore = 999

	// RejectScore is forced onto a candidate by a hard reject rule. It is far
	// below any acceptance threshold.
	RejectScore = -9999

	// ConfidentThreshold is the minimum score for the confident pass.
	ConfidentThreshold = 150

	// StrongMatchThreshold is the score below which a candidate needs a strong
	// keyword in its domain or URL to survive.
	StrongMatchThreshold = 220
)

// ResolutionOutcome is the final result for one institution. It is written
// once and never mutated.
type ResolutionOutcome struct {
	Institution InstitutionRecord `json:"institution" yaml:"institution"`

	// Domain is empty unless Status.Resolved().
	Domain string `json:"domain" yaml:"domain"`
	Status Status `json:"status" yaml:"status"`
	Score  int    `json:"score" yaml:"score"`
	Reason string `json:"reason" yaml:"reason"`
	Source Source `json:"source,omitempty" yaml:"source,omitempty"`

	// Query is the search query issued, empty for override and whitelist hits.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`

	// Candidates is the full sorted candidate list, kept for the audit trail.
	Candidates []Candidate `json:"candidates" yaml:"candidates"`
}

// NotFound builds a NOT_FOUND outcome with the given reason and candidates.
func NotFound(rec InstitutionRecord, reason string, candidates []Candidate) ResolutionOutcome {
	return ResolutionOutcome{
		Institution: rec,
		Status:      StatusNotFound,
		Reason:      reason,
		Candidates:  candidates,
	}
}
