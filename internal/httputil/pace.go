// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the search client, the
// liveness probe and the batch: client construction and request pacing.
package httputil

import (
	"context"
	"time"
)

// DefaultCooldown is the pause after the search service answers HTTP 429.
const DefaultCooldown = 60 * time.Second

// Pacer spaces out calls to a rate-limited service. Delay is applied before
// every call; Cooldown is applied once after the service reports a rate limit.
type Pacer struct {
	Delay    time.Duration
	Cooldown time.Duration
}

// Wait sleeps for the fixed inter-call delay.
func (p *Pacer) Wait(ctx context.Context) error {
	return Sleep(ctx, p.Delay)
}

// CoolDown sleeps for the rate-limit cooldown.
func (p *Pacer) CoolDown(ctx context.Context) error {
	return Sleep(ctx, p.Cooldown)
}

// Sleep blocks for d or until ctx is cancelled, in which case it returns
// ctx.Err(). A non-positive d returns immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
