// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search is the boundary to the external keyword-search service.
// A Searcher takes a query string and returns up to ten results in the
// service's relevance order, or one of the errors below.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/domain-finder/pkg/types"
)

// Searcher runs one keyword query against a search service.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.SearchResultItem, error)
}

// ErrRateLimited is returned when the service answers HTTP 429.
var ErrRateLimited = errors.New("search service rate limit")

// ServiceError is returned for any non-200 response other than 429.
type ServiceError struct {
	Backend string
	Status  int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s API error %d", e.Backend, e.Status)
}

// TransportError wraps timeouts, DNS failures, connection resets and
// undecodable responses.
type TransportError struct {
	Backend string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Backend, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Kind classifies err for logging and metrics: "rate_limited", "service",
// "transport" or "unknown".
func Kind(err error) string {
	var se *ServiceError
	var te *TransportError
	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.As(err, &se):
		return "service"
	case errors.As(err, &te):
		return "transport"
	default:
		return "unknown"
	}
}
