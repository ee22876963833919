// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/pdiddy/domain-finder/internal/score"
	"github.com/pdiddy/domain-finder/pkg/types"
)

// State is a step of candidate selection for one institution.
type State int

const (
	StateInit State = iota
	StateScored
	StateSelectedConfident
	StateSelectedFallback
	StateUnresolved
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateScored:
		return "scored"
	case StateSelectedConfident:
		return "selected_confident"
	case StateSelectedFallback:
		return "selected_fallback"
	case StateUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Rank sorts candidates by score, highest first. The sort is stable, so
// equal scores keep the search service's result order.
func Rank(candidates []types.Candidate) []types.Candidate {
	ranked := make([]types.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// selectCandidate runs the confident pass and then the fallback pass over
// ranked candidates. It returns the index of the chosen candidate, or -1,
// together with the terminal state.
func (r *Resolver) selectCandidate(ctx context.Context, run *RunContext, ranked []types.Candidate) (int, State) {
	for i, c := range ranked {
		if c.Rejected || c.Score < types.ConfidentThreshold {
			continue
		}
		if r.scorer.Blacklisted(c.Domain) || run.Registry.Contains(c.Domain) {
			continue
		}
		if err := r.prober.Probe(ctx, c.Domain); err != nil {
			r.logger.Debug("candidate failed liveness probe",
				zap.String("domain", c.Domain), zap.Error(err))
			r.metrics.ProbeFailed()
			continue
		}
		return i, StateSelectedConfident
	}

	for i, c := range ranked {
		if !score.IsAcademic(c.Domain) || !score.HasAthleticsMarker(c.Domain, c.URL) {
			continue
		}
		if r.scorer.Blacklisted(c.Domain) || run.Registry.Contains(c.Domain) {
			continue
		}
		if r.probeFallback {
			if err := r.prober.Probe(ctx, c.Domain); err != nil {
				r.logger.Debug("fallback candidate failed liveness probe",
					zap.String("domain", c.Domain), zap.Error(err))
				r.metrics.ProbeFailed()
				continue
			}
		}
		return i, StateSelectedFallback
	}

	return -1, StateUnresolved
}
