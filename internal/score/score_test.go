// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/domain-finder/pkg/types"
)

type usedSet map[string]bool

func (u usedSet) Contains(d string) bool { return u[d] }

func newTestScorer(blacklist ...string) *Scorer {
	return New(types.ScoringConfig{}, types.Tables{Blacklist: blacklist})
}

var officialItem = types.SearchResultItem{
	URL:     "https://exampleathletics.com/staff",
	Title:   "Example Athletics",
	Snippet: "Official site",
}

func TestScoreConfidentCom(t *testing.T) {
	rec := types.InstitutionRecord{Name: "Example Athletics Institute"}
	c := newTestScorer().Score(rec, officialItem, nil)

	assert.Equal(t, "exampleathletics.com", c.Domain)
	assert.Equal(t, 260, c.Score)
	assert.False(t, c.Rejected)
	assert.Equal(t, []string{".com with athletics/sports", "2 school/city/mascot tokens matched"}, c.Reasons)
}

func TestScoreTokenBonusIsLinear(t *testing.T) {
	s := newTestScorer()
	two := s.Score(types.InstitutionRecord{Name: "Example Athletics Institute"}, officialItem, nil)
	none := s.Score(types.InstitutionRecord{Name: "Zulu Yankee"}, officialItem, nil)

	require.False(t, two.Rejected)
	require.False(t, none.Rejected)
	assert.Equal(t, 2*TokenBonus, two.Score-none.Score)
}

func TestScoreIsDeterministic(t *testing.T) {
	s := New(types.ScoringConfig{}, types.Tables{
		Blacklist: []string{"facebook.com"},
		Whitelist: map[string]string{"Other School": "exampleathletics.com"},
	})
	rec := types.InstitutionRecord{Name: "Example State", CityRegion: "Springfield, IL", Conference: "Big Plains"}
	used := usedSet{"exampleathletics.com": true}

	first := s.Score(rec, officialItem, used)
	for i := 0; i < 5; i++ {
		again := s.Score(rec, officialItem, used)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("score changed between calls (-first +again):\n%s", diff)
		}
	}
}

func TestScoreBlacklistedDomain(t *testing.T) {
	rec := types.InstitutionRecord{Name: "Example State Wranglers"}
	item := types.SearchResultItem{URL: "https://facebook.com/examplesports", Title: "Example Sports", Snippet: "..."}

	c := newTestScorer("facebook.com").Score(rec, item, nil)

	require.NotEmpty(t, c.Reasons)
	assert.Equal(t, "blacklisted domain", c.Reasons[0])
	assert.Equal(t, BlacklistPenalty+ComAthleticsBonus+TokenBonus, c.Score)
	assert.Less(t, c.Score, types.ConfidentThreshold)
}

func TestScoreAcademicRootRejected(t *testing.T) {
	rec := types.InstitutionRecord{Name: "Example College"}
	item := types.SearchResultItem{URL: "https://www.example.edu/", Title: "Example College", Snippet: "Welcome"}

	c := newTestScorer().Score(rec, item, nil)

	assert.True(t, c.Rejected)
	assert.Equal(t, types.RejectScore, c.Score)
	assert.Contains(t, c.Reasons, ".edu root without athletics")
	assert.Contains(t, c.Reasons, "rejected: .edu root without athletics path")
}

func TestScoreAcademicWithAthleticsPath(t *testing.T) {
	rec := types.InstitutionRecord{Name: "Schoolname College"}
	item := types.SearchResultItem{URL: "https://schoolname.edu/athletics", Title: "Home", Snippet: "News"}

	c := newTestScorer().Score(rec, item, nil)

	assert.False(t, c.Rejected)
	assert.Equal(t, EduAthleticsBonus+TokenBonus, c.Score)
	assert.Equal(t, "accepted with low score due to strong keyword", c.Reasons[len(c.Reasons)-1])
}

func TestScoreHardRejects(t *testing.T) {
	tests := []struct {
		name   string
		rec    types.InstitutionRecord
		item   types.SearchResultItem
		reason string
	}{
		{
			name:   "encyclopedia",
			rec:    types.InstitutionRecord{Name: "Example State"},
			item:   types.SearchResultItem{URL: "https://en.wikipedia.org/wiki/Example_State_athletics", Title: "Example State"},
			reason: "rejected: encyclopedia/store domain",
		},
		{
			name:   "merchandise",
			rec:    types.InstitutionRecord{Name: "Example State"},
			item:   types.SearchResultItem{URL: "https://examplestore.com/athletics", Title: "Example gear"},
			reason: "rejected: encyclopedia/store domain",
		},
		{
			name:   "plausible com without strong keyword",
			rec:    types.InstitutionRecord{Name: "Example State"},
			item:   types.SearchResultItem{URL: "https://randomsite.com/", Title: "Example"},
			reason: "rejected: score too low and no strong keyword",
		},
		{
			name:   "no host",
			rec:    types.InstitutionRecord{Name: "Example State"},
			item:   types.SearchResultItem{URL: "", Title: "Example"},
			reason: "rejected: no domain in result url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestScorer().Score(tt.rec, tt.item, nil)
			assert.True(t, c.Rejected)
			assert.Equal(t, types.RejectScore, c.Score)
			assert.Contains(t, c.Reasons, tt.reason)
		})
	}
}

func TestScorePenaltiesAndBonuses(t *testing.T) {
	rec := types.InstitutionRecord{Name: "Example Athletics Institute"}

	t.Run("used domain", func(t *testing.T) {
		c := newTestScorer().Score(rec, officialItem, usedSet{"exampleathletics.com": true})
		assert.Equal(t, 260+UsedDomainPenalty, c.Score)
		assert.Contains(t, c.Reasons, "already used domain")
	})

	t.Run("media snippet", func(t *testing.T) {
		item := officialItem
		item.Snippet = "Example defeated Rival 3-1 on Saturday"
		c := newTestScorer().Score(rec, item, nil)
		assert.Equal(t, 260+MediaPenalty, c.Score)
		assert.Contains(t, c.Reasons, "media/recruiting/news snippet")
	})

	t.Run("whitelist corroboration", func(t *testing.T) {
		s := New(types.ScoringConfig{}, types.Tables{
			Whitelist: map[string]string{"Other School": "https://www.exampleathletics.com"},
		})
		c := s.Score(rec, officialItem, nil)
		assert.Equal(t, 260+WhitelistBonus, c.Score)
	})

	t.Run("org and net", func(t *testing.T) {
		item := types.SearchResultItem{URL: "https://examplesports.org", Title: "Example"}
		c := newTestScorer().Score(types.InstitutionRecord{Name: "Example"}, item, nil)
		assert.Equal(t, OrgNetBonus+TokenBonus, c.Score)
	})
}

func TestScoreStrongKeywordGate(t *testing.T) {
	cfg := types.ScoringConfig{StrongKeywords: []string{"nothing-matches-this"}}
	rec := types.InstitutionRecord{Name: "Wrangler State"}

	t.Run("mascot compound survives", func(t *testing.T) {
		c := New(cfg, types.Tables{}).Score(rec, types.SearchResultItem{URL: "https://wranglersports.net/"}, nil)
		assert.False(t, c.Rejected)
		assert.Equal(t, OrgNetBonus+TokenBonus, c.Score)
	})

	t.Run("no compound rejected", func(t *testing.T) {
		c := New(cfg, types.Tables{}).Score(rec, types.SearchResultItem{URL: "https://sportsnews.net/"}, nil)
		assert.True(t, c.Rejected)
	})

	t.Run("sport keyword survives", func(t *testing.T) {
		sportCfg := cfg
		sportCfg.SportKeywords = []string{"Volleyball"}
		c := New(sportCfg, types.Tables{}).Score(types.InstitutionRecord{Name: "Zulu"}, types.SearchResultItem{URL: "https://cityvolleyball.org/"}, nil)
		assert.False(t, c.Rejected)
	})
}

func TestScoreAllKeepsServiceOrder(t *testing.T) {
	items := []types.SearchResultItem{
		{URL: "https://a.example.com"},
		{URL: "https://b.example.org"},
		{URL: "https://c.example.edu/athletics"},
	}
	got := newTestScorer().ScoreAll(types.InstitutionRecord{Name: "X"}, items, nil)
	require.Len(t, got, 3)
	assert.Equal(t, "a.example.com", got[0].Domain)
	assert.Equal(t, "b.example.org", got[1].Domain)
	assert.Equal(t, "c.example.edu", got[2].Domain)
}
