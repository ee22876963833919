// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/domain-finder/pkg/types"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestTrailRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audit.yaml")

	found := types.ResolutionOutcome{
		Institution: types.InstitutionRecord{Name: "Example Athletics Institute", Division: "NCAA"},
		Domain:      "exampleathletics.com",
		Status:      types.StatusFound,
		Score:       260,
		Reason:      ".com with athletics/sports; 2 school/city/mascot tokens matched",
		Source:      types.SourceSearch,
		Query:       "Example Athletics Institute Example athletics official site",
		Candidates: []types.Candidate{
			{Domain: "exampleathletics.com", Score: 260, Reasons: []string{".com with athletics/sports", "2 school/city/mascot tokens matched"}, URL: "https://exampleathletics.com/staff"},
			{Domain: "wikipedia.org", Score: types.RejectScore, Rejected: true, Reasons: []string{".org/.net", "rejected: encyclopedia/store domain"}},
		},
	}
	missing := types.NotFound(types.InstitutionRecord{Name: "Nowhere College"}, "no candidate passed threshold", nil)

	first := &Trail{Path: path, RunID: "run-1", Now: fixedClock}
	require.NoError(t, first.Record([]types.ResolutionOutcome{found}))
	second := &Trail{Path: path, RunID: "run-2", Now: fixedClock}
	require.NoError(t, second.Record([]types.ResolutionOutcome{missing}))

	entries, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "run-1", entries[0].RunID)
	assert.True(t, fixedClock().Equal(entries[0].Time))
	if diff := cmp.Diff(found, entries[0].Outcome); diff != "" {
		t.Errorf("outcome mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "run-2", entries[1].RunID)
	assert.Equal(t, types.StatusNotFound, entries[1].Outcome.Status)
	assert.Equal(t, "Nowhere College", entries[1].Outcome.Institution.Name)
}

func TestTrailDisabled(t *testing.T) {
	var nilTrail *Trail
	assert.NoError(t, nilTrail.Record([]types.ResolutionOutcome{{}}))
	assert.NoError(t, (&Trail{}).Record([]types.ResolutionOutcome{{}}))
}

func TestReadAllMissing(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
}
