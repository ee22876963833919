// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/domain-finder/pkg/types"
)

// DefaultEndpoint is the Google Custom Search JSON API endpoint.
const DefaultEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleBackend queries the Google Custom Search JSON API.
type GoogleBackend struct {
	Client *http.Client
	Config types.SearchConfig
}

// Name returns the backend identifier.
func (b *GoogleBackend) Name() string { return "google" }

// Search issues a single request for query. It does not retry: a 429 is
// reported as ErrRateLimited so the batch can cool down.
func (b *GoogleBackend) Search(ctx context.Context, query string, limit int) ([]types.SearchResultItem, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 || limit > types.MaxResultCount {
		limit = types.MaxResultCount
	}

	endpoint := b.Config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	params := url.Values{
		"key": {b.Config.APIKey},
		"cx":  {b.Config.EngineID},
		"q":   {query},
		"num": {strconv.Itoa(limit)},
	}
	reqURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.Config.UserAgent != "" {
		req.Header.Set("User-Agent", b.Config.UserAgent)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Backend: b.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Backend: b.Name(), Status: resp.StatusCode}
	}

	var gr googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, &TransportError{Backend: b.Name(), Err: fmt.Errorf("parsing response: %w", err)}
	}

	items := make([]types.SearchResultItem, 0, len(gr.Items))
	for _, it := range gr.Items {
		if it.Link == "" {
			continue
		}
		items = append(items, types.SearchResultItem{
			URL:     it.Link,
			Title:   it.Title,
			Snippet: it.Snippet,
		})
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

// Custom Search JSON structures.
type googleResponse struct {
	Items []googleItem `json:"items"`
}

type googleItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
