// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"errors"
	"net/http"
	"time"

	"github.com/pdiddy/domain-finder/pkg/types"
)

// DefaultUserAgent is sent when the configuration leaves it empty.
const DefaultUserAgent = "domain-finder/0.1"

// userAgentTransport sets a User-Agent on requests that do not carry one.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// NewClient builds an HTTP client with the configured timeout and a default
// User-Agent.
func NewClient(cfg types.HTTPConfig) *http.Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.TLSHandshakeTimeout = 10 * time.Second
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &userAgentTransport{base: base, userAgent: ua},
	}
}
