// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry tracks the domains assigned during a single run so that
// no domain is given to two institutions.
package registry

import (
	"sort"

	"github.com/pdiddy/domain-finder/internal/score"
)

// Registry is the run-scoped set of assigned domains. It only grows.
// It is owned by the single-threaded batch and is not safe for concurrent use.
type Registry struct {
	domains map[string]struct{}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{domains: make(map[string]struct{})}
}

// Contains reports whether domain has been assigned.
func (r *Registry) Contains(domain string) bool {
	_, ok := r.domains[score.NormalizeDomain(domain)]
	return ok
}

// Add records domain as assigned. It reports whether the domain was new.
// Empty domains are ignored.
func (r *Registry) Add(domain string) bool {
	d := score.NormalizeDomain(domain)
	if d == "" {
		return false
	}
	if _, ok := r.domains[d]; ok {
		return false
	}
	r.domains[d] = struct{}{}
	return true
}

// Len returns the number of assigned domains.
func (r *Registry) Len() int {
	return len(r.domains)
}

// Domains returns the assigned domains in sorted order.
func (r *Registry) Domains() []string {
	out := make([]string, 0, len(r.domains))
	for d := range r.domains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
