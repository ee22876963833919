// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch drives a resolution run over a list of institutions.
//
// Institutions are processed one at a time, in input order. A fixed delay
// precedes every institution; a rate-limited search adds a cooldown. Results
// are buffered and appended to the success and errors files every
// AutoSaveInterval institutions, so an interrupted run loses at most one
// interval of work and can be resumed with ResumeTracker.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/domain-finder/internal/metrics"
	"github.com/pdiddy/domain-finder/internal/resolve"
	"github.com/pdiddy/domain-finder/internal/search"
	"github.com/pdiddy/domain-finder/pkg/types"
)

// Resolver resolves one institution.
type Resolver interface {
	Resolve(ctx context.Context, run *resolve.RunContext, rec types.InstitutionRecord) (types.ResolutionOutcome, error)
}

// Pacer spaces out institutions.
type Pacer interface {
	Wait(ctx context.Context) error
	CoolDown(ctx context.Context) error
}

// Sink receives a checkpoint's worth of outcomes.
type Sink interface {
	Append(outcomes []types.ResolutionOutcome) error
}

// Recorder receives every outcome for the audit trail.
type Recorder interface {
	Record(outcomes []types.ResolutionOutcome) error
}

// Runner holds the collaborators of a batch run.
type Runner struct {
	Resolver Resolver
	Pacer    Pacer

	// Success receives FOUND and FOUND_NOT_CONFIDENT outcomes, Errors the rest.
	Success Sink
	Errors  Sink

	// Audit is optional.
	Audit Recorder

	Metrics *metrics.Metrics
	Logger  *zap.Logger

	// Out receives human-facing progress lines.
	Out io.Writer

	AutoSaveInterval int
	ProgressInterval int
}

// checkpoint holds outcomes not yet written.
type checkpoint struct {
	success []types.ResolutionOutcome
	errors  []types.ResolutionOutcome
	all     []types.ResolutionOutcome
}

func (c *checkpoint) add(out types.ResolutionOutcome) {
	if out.Status.Resolved() {
		c.success = append(c.success, out)
	} else {
		c.errors = append(c.errors, out)
	}
	c.all = append(c.all, out)
}

func (c *checkpoint) reset() {
	c.success, c.errors, c.all = nil, nil, nil
}

// Run resolves every record of queue. Buffered outcomes are flushed before
// Run returns, including when ctx is cancelled. The returned error is
// non-nil only for cancellation or a failed write; search failures are
// recorded in the outcomes.
func (r *Runner) Run(ctx context.Context, run *resolve.RunContext, queue []types.InstitutionRecord) (Summary, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	autoSave := r.AutoSaveInterval
	if autoSave <= 0 {
		autoSave = 1
	}

	start := time.Now()
	var sum Summary
	var pending checkpoint
	total := len(queue)

	finish := func(err error) (Summary, error) {
		if flushErr := r.flush(&pending, &sum); flushErr != nil {
			err = errors.Join(err, flushErr)
		}
		r.Metrics.SetAssignedDomains(run.Registry.Len())
		logger.Debug("assigned domains", zap.Strings("domains", run.Registry.Domains()))
		sum.Elapsed = time.Since(start)
		return sum, err
	}

	for i, rec := range queue {
		n := i + 1
		if err := r.Pacer.Wait(ctx); err != nil {
			return finish(err)
		}

		logger.Debug("resolving", zap.Int("index", n), zap.Int("total", total), zap.String("institution", rec.Name))
		res, err := r.Resolver.Resolve(ctx, run, rec)
		if ctx.Err() != nil {
			// An interrupted resolution is discarded so the next run retries it.
			return finish(ctx.Err())
		}
		sum.Add(res)
		pending.add(res)
		r.Metrics.Outcome(res.Status, res.Source)
		logger.Info("resolved",
			zap.String("run_id", run.RunID),
			zap.String("institution", res.Institution.Name),
			zap.String("status", string(res.Status)),
			zap.String("domain", res.Domain),
			zap.Int("score", res.Score),
			zap.String("reason", res.Reason))

		if err != nil {
			sum.SearchErrors++
			logger.Warn("search failed", zap.String("institution", rec.Name),
				zap.String("kind", search.Kind(err)), zap.Error(err))
			if errors.Is(err, search.ErrRateLimited) {
				fmt.Fprintf(out, "rate limited, cooling down before %d/%d\n", n+1, total)
				if err := r.Pacer.CoolDown(ctx); err != nil {
					return finish(err)
				}
			}
		}

		if r.ProgressInterval > 0 && n%r.ProgressInterval == 0 {
			fmt.Fprintf(out, "progress: %d/%d (found %d, not confident %d, not found %d)\n",
				n, total, sum.Found, sum.NotConfident, sum.NotFound)
		}
		if n%autoSave == 0 {
			if err := r.flush(&pending, &sum); err != nil {
				return finish(err)
			}
			fmt.Fprintf(out, "auto-saved: %d/%d\n", n, total)
		}
	}
	return finish(nil)
}

// flush appends pending outcomes to the sinks and the audit trail. The
// buffer is cleared only after every write succeeded.
func (r *Runner) flush(p *checkpoint, sum *Summary) error {
	if len(p.all) == 0 {
		return nil
	}
	if err := r.Success.Append(p.success); err != nil {
		return fmt.Errorf("saving results: %w", err)
	}
	p.success = nil
	if err := r.Errors.Append(p.errors); err != nil {
		return fmt.Errorf("saving unresolved institutions: %w", err)
	}
	p.errors = nil
	if r.Audit != nil {
		if err := r.Audit.Record(p.all); err != nil {
			return fmt.Errorf("writing audit trail: %w", err)
		}
	}
	p.reset()
	sum.Checkpoints++
	r.Metrics.Checkpointed()
	return nil
}
