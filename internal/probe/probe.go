// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe checks that a candidate domain answers over HTTP before it
// is accepted.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 2 * time.Second

// Prober checks that a domain is reachable.
type Prober interface {
	Probe(ctx context.Context, domain string) error
}

// Error reports a failed probe. Status is zero when the request itself failed.
type Error struct {
	Domain string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %s: %v", e.Domain, e.Err)
	}
	return fmt.Sprintf("probe %s: HTTP %d", e.Domain, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPProber sends a HEAD request to http://<domain>. Any 4xx/5xx answer or
// transport failure is a failed probe. Redirects are followed by the client.
type HTTPProber struct {
	Client    *http.Client
	Timeout   time.Duration
	UserAgent string

	// Scheme defaults to "http". Tests point it at an httptest server.
	Scheme string
}

// Probe performs the reachability check for domain.
func (p *HTTPProber) Probe(ctx context.Context, domain string) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scheme := p.Scheme
	if scheme == "" {
		scheme = "http"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, scheme+"://"+domain, nil)
	if err != nil {
		return &Error{Domain: domain, Err: err}
	}
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return &Error{Domain: domain, Err: err}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{Domain: domain, Status: resp.StatusCode}
	}
	return nil
}
