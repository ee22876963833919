// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"github.com/pdiddy/domain-finder/internal/tabular"
	"github.com/pdiddy/domain-finder/pkg/types"
)

// ResumeTracker holds the institutions already resolved by an earlier run.
type ResumeTracker struct {
	names map[string]bool
}

// NewResumeTracker returns a tracker over the given names.
func NewResumeTracker(names map[string]bool) *ResumeTracker {
	if names == nil {
		names = map[string]bool{}
	}
	return &ResumeTracker{names: names}
}

// LoadResumeTracker reads the names in a previous output file. A missing
// file gives an empty tracker. Only the success file is consulted, so
// NOT_FOUND institutions are retried.
func LoadResumeTracker(outputPath string) (*ResumeTracker, error) {
	names, err := tabular.ReadProcessedNames(outputPath)
	if err != nil {
		return nil, err
	}
	return NewResumeTracker(names), nil
}

// Len returns the number of names read from prior output.
func (t *ResumeTracker) Len() int {
	return len(t.names)
}

// Processed reports whether rec needs no further work: its name appears in
// prior output, or the input row itself already carries a resolved domain.
func (t *ResumeTracker) Processed(rec types.InstitutionRecord) bool {
	if t.names[rec.Name] {
		return true
	}
	status := types.Status(rec.PriorStatus)
	return status.Resolved() && rec.PriorDomain != ""
}

// Plan builds the work queue: already processed records are dropped when
// skip is set, then the queue is cut to limit when limit is positive. It
// returns the queue and the number of records dropped as processed.
func Plan(records []types.InstitutionRecord, tracker *ResumeTracker, skip bool, limit int) ([]types.InstitutionRecord, int) {
	queue := make([]types.InstitutionRecord, 0, len(records))
	resumed := 0
	for _, rec := range records {
		if skip && tracker != nil && tracker.Processed(rec) {
			resumed++
			continue
		}
		queue = append(queue, rec)
	}
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	return queue, resumed
}
