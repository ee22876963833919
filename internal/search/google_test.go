// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/domain-finder/pkg/types"
)

const sampleGoogleResponse = `{
  "kind": "customsearch#search",
  "items": [
    {"title": "Example Athletics", "link": "https://exampleathletics.com/staff", "snippet": "Official site"},
    {"title": "Example Sports", "link": "https://facebook.com/examplesports", "snippet": "Like us"},
    {"title": "No link", "link": "", "snippet": "dropped"}
  ]
}`

func newTestBackend(ts *httptest.Server) *GoogleBackend {
	return &GoogleBackend{
		Client: ts.Client(),
		Config: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
			Endpoint:   ts.URL,
			APIKey:     "k-123",
			EngineID:   "cx-456",
		},
	}
}

func TestGoogleSearchParsesItems(t *testing.T) {
	var gotQuery, gotNum, gotKey, gotCX, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotNum = r.URL.Query().Get("num")
		gotKey = r.URL.Query().Get("key")
		gotCX = r.URL.Query().Get("cx")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleGoogleResponse)
	}))
	defer ts.Close()

	items, err := newTestBackend(ts).Search(context.Background(), "Example athletics official site", 10)
	require.NoError(t, err)

	assert.Equal(t, "Example athletics official site", gotQuery)
	assert.Equal(t, "10", gotNum)
	assert.Equal(t, "k-123", gotKey)
	assert.Equal(t, "cx-456", gotCX)
	assert.Equal(t, "test/0.1", gotUA)

	require.Len(t, items, 2)
	assert.Equal(t, types.SearchResultItem{
		URL: "https://exampleathletics.com/staff", Title: "Example Athletics", Snippet: "Official site",
	}, items[0])
	assert.Equal(t, "https://facebook.com/examplesports", items[1].URL)
}

func TestGoogleSearchNoItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"kind": "customsearch#search"}`)
	}))
	defer ts.Close()

	items, err := newTestBackend(ts).Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGoogleSearchLimitClamped(t *testing.T) {
	var gotNum string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotNum = r.URL.Query().Get("num")
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	_, err := newTestBackend(ts).Search(context.Background(), "q", 50)
	require.NoError(t, err)
	assert.Equal(t, "10", gotNum)
}

func TestGoogleSearchErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind string
	}{
		{"rate limited", http.StatusTooManyRequests, "", "rate_limited"},
		{"forbidden", http.StatusForbidden, `{"error":{}}`, "service"},
		{"server error", http.StatusInternalServerError, "", "service"},
		{"malformed json", http.StatusOK, `{"items": [`, "transport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			_, err := newTestBackend(ts).Search(context.Background(), "q", 10)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, Kind(err))
		})
	}
}

func TestGoogleSearchServiceErrorCarriesStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := newTestBackend(ts).Search(context.Background(), "q", 10)
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "google API error 502", err.Error())
}

func TestGoogleSearchTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	b := newTestBackend(ts)
	ts.Close()

	_, err := b.Search(context.Background(), "q", 10)
	require.Error(t, err)
	assert.Equal(t, "transport", Kind(err))
}

func TestGoogleSearchEmptyQuery(t *testing.T) {
	b := &GoogleBackend{Client: http.DefaultClient}
	_, err := b.Search(context.Background(), "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
