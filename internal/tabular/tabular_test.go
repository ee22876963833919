// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/domain-finder/pkg/types"
)

func TestRead(t *testing.T) {
	input := "\ufeffSchool Name,Division,City_State,Conference,Type\n" +
		"Example State Wranglers,NCAA,\"Austin, TX\",Big Plains,public\n" +
		"  ,NJCAA,Nowhere,,\n" +
		"Lakeside College,NaN,Lakeside,null,private\n" +
		"Short Row\n"

	res, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	assert.Equal(t, types.InstitutionRecord{
		Name:       "Example State Wranglers",
		Division:   "NCAA",
		CityRegion: "Austin, TX",
		Conference: "Big Plains",
		Type:       "public",
	}, res.Records[0])
	assert.Equal(t, "", res.Records[1].Division, "placeholder cells are cleaned")
	assert.Equal(t, "", res.Records[1].Conference)
	assert.Equal(t, "Short Row", res.Records[2].Name)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 3, res.Skipped[0].Line)
	assert.True(t, errors.Is(res.Skipped[0], ErrMissingName))
}

func TestReadPriorColumns(t *testing.T) {
	input := "school_name,division,athletics_domain,status\n" +
		"Example College,NCAA,goexample.com,FOUND\n"

	res, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "goexample.com", res.Records[0].PriorDomain)
	assert.Equal(t, "FOUND", res.Records[0].PriorStatus)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("division,conference\nNCAA,Big\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no institution name column")

	res, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Records)

	_, err = ReadInstitutions(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestErrorsPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"results.csv", "results_errors.csv"},
		{"data/output/athletics.csv", "data/output/athletics_errors.csv"},
		{"out", "out_errors.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorsPath(tt.in), tt.in)
	}
}

func TestRow(t *testing.T) {
	rec := types.InstitutionRecord{Name: "Example College", Division: "NCAA", CityRegion: "Ely, NV", Type: "public", Conference: "West"}

	found := types.ResolutionOutcome{Institution: rec, Domain: "goexample.com", Status: types.StatusFound, Score: 260, Reason: ".com with athletics/sports"}
	assert.Equal(t,
		[]string{"Example College", "NCAA", "Ely, NV", "public", "West", "goexample.com", "FOUND", "260", ".com with athletics/sports"},
		Row(found))

	missing := types.ResolutionOutcome{Institution: rec, Domain: "stale.com", Status: types.StatusNotFound, Reason: "no candidate passed threshold"}
	assert.Equal(t, "", Row(missing)[5], "NOT_FOUND rows never carry a domain")
}

func TestAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.csv")
	a := &Appender{Path: path}

	require.NoError(t, a.Append(nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty append must not create the file")

	batch1 := []types.ResolutionOutcome{{
		Institution: types.InstitutionRecord{Name: "Alpha College"},
		Domain:      "alphasports.com", Status: types.StatusFound, Score: 230, Reason: "a; b",
	}}
	batch2 := []types.ResolutionOutcome{{
		Institution: types.InstitutionRecord{Name: "Beta, The College"},
		Domain:      "beta.edu", Status: types.StatusFoundNotConfident, Score: 130, Reason: "fallback .edu with athletics path",
	}}
	require.NoError(t, a.Append(batch1))
	require.NoError(t, a.Append(batch2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(OutputColumns, ","), lines[0])
	assert.Equal(t, "Alpha College,,,,,alphasports.com,FOUND,230,a; b", lines[1])
	assert.Equal(t, `"Beta, The College",,,,,beta.edu,FOUND_NOT_CONFIDENT,130,fallback .edu with athletics path`, lines[2])

	names, err := ReadProcessedNames(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Alpha College": true, "Beta, The College": true}, names)
}

func TestReadProcessedNamesMissingFile(t *testing.T) {
	names, err := ReadProcessedNames(filepath.Join(t.TempDir(), "none.csv"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
