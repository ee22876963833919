// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve finds the athletics domain for one institution.
//
// Resolution order: the override table, then the whitelist, then a keyword
// search whose results are scored and passed through the selection policy.
// Every assigned domain is recorded in the run's registry before Resolve
// returns.
package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/domain-finder/internal/metrics"
	"github.com/pdiddy/domain-finder/internal/probe"
	"github.com/pdiddy/domain-finder/internal/query"
	"github.com/pdiddy/domain-finder/internal/registry"
	"github.com/pdiddy/domain-finder/internal/score"
	"github.com/pdiddy/domain-finder/internal/search"
	"github.com/pdiddy/domain-finder/pkg/types"
)

// Outcome reasons that are not derived from a candidate.
const (
	ReasonOverride         = "found in manual_overrides"
	ReasonWhitelist        = "found in whitelist/domain_map"
	ReasonWhitelistEduRoot = "whitelist .edu root without athletics path"
	ReasonFallback         = "fallback .edu with athletics path"
	ReasonNoCandidate      = "no candidate passed threshold"
	ReasonMissingName      = "missing institution name"
)

// RunContext carries the state shared by every institution of one run.
type RunContext struct {
	RunID    string
	Registry *registry.Registry
}

// NewRunContext returns a run context with an empty registry.
func NewRunContext(runID string) *RunContext {
	return &RunContext{RunID: runID, Registry: registry.New()}
}

// Resolver resolves one institution at a time. It holds no per-run state.
type Resolver struct {
	searcher      search.Searcher
	scorer        *score.Scorer
	prober        probe.Prober
	tables        types.Tables
	resultCount   int
	probeFallback bool
	logger        *zap.Logger
	metrics       *metrics.Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// New builds a Resolver from the run configuration.
func New(cfg types.Config, searcher search.Searcher, prober probe.Prober, opts ...Option) *Resolver {
	r := &Resolver{
		searcher:      searcher,
		scorer:        score.New(cfg.Scoring, cfg.Tables),
		prober:        prober,
		tables:        cfg.Tables,
		resultCount:   cfg.Search.ResultCount,
		probeFallback: cfg.Probe.Fallback,
		logger:        zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve determines the outcome for rec. The outcome is always usable; the
// returned error is the search failure that downgraded it to NOT_FOUND, so
// the caller can react to rate limiting.
func (r *Resolver) Resolve(ctx context.Context, run *RunContext, rec types.InstitutionRecord) (types.ResolutionOutcome, error) {
	rec = rec.Clean()
	if rec.Name == "" {
		return types.NotFound(rec, ReasonMissingName, nil), nil
	}

	r.logger.Debug("resolving",
		zap.String("institution", rec.Name),
		zap.String("state", StateInit.String()))
	if out, ok := r.lookupTables(run, rec); ok {
		return out, nil
	}

	q := query.Build(rec)
	items, err := r.searcher.Search(ctx, q, r.resultCount)
	if err != nil {
		r.metrics.SearchFailed(search.Kind(err))
		out := types.NotFound(rec, err.Error(), nil)
		out.Query = q
		out.Source = types.SourceSearch
		return out, err
	}

	ranked := Rank(r.scorer.ScoreAll(rec, items, run.Registry))
	r.logger.Debug("scored candidates",
		zap.String("institution", rec.Name),
		zap.String("state", StateScored.String()),
		zap.Int("candidates", len(ranked)))

	idx, state := r.selectCandidate(ctx, run, ranked)
	out := types.ResolutionOutcome{
		Institution: rec,
		Query:       q,
		Candidates:  ranked,
	}
	switch state {
	case StateSelectedConfident:
		c := ranked[idx]
		out.Domain = c.Domain
		out.Status = types.StatusFound
		out.Score = c.Score
		out.Reason = c.Reason()
		out.Source = types.SourceSearch
	case StateSelectedFallback:
		c := ranked[idx]
		out.Domain = c.Domain
		out.Status = types.StatusFoundNotConfident
		out.Score = c.Score
		out.Reason = ReasonFallback
		out.Source = types.SourceFallback
	default:
		out.Status = types.StatusNotFound
		out.Reason = ReasonNoCandidate
		out.Source = types.SourceSearch
	}
	if out.Status.Resolved() {
		run.Registry.Add(out.Domain)
	}
	r.logger.Debug("selection finished",
		zap.String("institution", rec.Name),
		zap.String("state", state.String()),
		zap.String("domain", out.Domain))
	return out, nil
}

// lookupTables consults the override table and then the whitelist. A
// whitelist entry that matches the blacklist is ignored and the institution
// goes to search.
func (r *Resolver) lookupTables(run *RunContext, rec types.InstitutionRecord) (types.ResolutionOutcome, bool) {
	if raw, ok := r.tables.Overrides[rec.OverrideKey()]; ok {
		if domain := tableDomain(raw); domain != "" {
			return r.authoritative(run, rec, domain, ReasonOverride, "manual override", types.SourceOverride), true
		}
	}

	raw, ok := r.tables.Whitelist[rec.Name]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return types.ResolutionOutcome{}, false
	}
	if score.IsBareAcademic(raw) {
		out := types.NotFound(rec, ReasonWhitelistEduRoot, nil)
		out.Source = types.SourceWhitelist
		return out, true
	}
	domain := tableDomain(raw)
	if domain == "" {
		return types.ResolutionOutcome{}, false
	}
	if r.scorer.Blacklisted(domain) {
		r.logger.Warn("ignoring blacklisted whitelist entry",
			zap.String("institution", rec.Name), zap.String("domain", domain))
		return types.ResolutionOutcome{}, false
	}
	return r.authoritative(run, rec, domain, ReasonWhitelist, "whitelist/domain_map", types.SourceWhitelist), true
}

// tableDomain normalizes a configured domain, which may be written as a
// bare host or as a URL.
func tableDomain(raw string) string {
	if d := score.Domain(raw); d != "" {
		return d
	}
	return score.NormalizeDomain(raw)
}

func (r *Resolver) authoritative(run *RunContext, rec types.InstitutionRecord, domain, reason, candidateReason string, src types.Source) types.ResolutionOutcome {
	run.Registry.Add(domain)
	return types.ResolutionOutcome{
		Institution: rec,
		Domain:      domain,
		Status:      types.StatusFound,
		Score:       types.OverrideScore,
		Reason:      reason,
		Source:      src,
		Candidates: []types.Candidate{{
			Domain:  domain,
			Score:   types.OverrideScore,
			Reasons: []string{candidateReason},
		}},
	}
}
