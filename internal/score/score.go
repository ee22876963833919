// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score assigns each search result a score and an ordered rationale.
//
// Scoring is a pure function of the institution record, the result, the set
// of domains already assigned in this run, the blacklist and the whitelist.
// An additive pass applies the rule table; three hard rules then force the
// score to types.RejectScore: reference and merchandise sites, academic
// domains without an athletics marker, and marginal scores whose domain and
// URL carry no strong athletics keyword.
package score

import (
	"fmt"
	"strings"

	"github.com/pdiddy/domain-finder/internal/query"
	"github.com/pdiddy/domain-finder/pkg/types"
)

// Rule deltas.
const (
	BlacklistPenalty  = -1000
	MediaPenalty      = -500
	UsedDomainPenalty = -100
	ComAthleticsBonus = 200
	ComBonus          = 100
	OrgNetBonus       = 50
	EduAthleticsBonus = 100
	EduRootPenalty    = -500
	TokenBonus        = 30
	WhitelistBonus    = 20
)

// MediaMarkers flag game recaps, recruiting services and news coverage.
var MediaMarkers = []string{
	"defeated", "hosted", "vs.", "history of", "recruiting",
	"campus visit", "results from", "roster", "schedule",
}

// DefaultStrongKeywords are generic athletics terms plus common team
// nicknames that mark a domain as an athletics site.
var DefaultStrongKeywords = []string{
	"athletics", "sports", "athleticdepartment",
	"tbirds", "raiders", "panthers", "eagles", "vikings", "chargers", "hawks",
	"bears", "mustangs", "saints", "titans", "pirates", "lakers", "bulldogs",
	"wildcats", "cougars", "rangers", "pioneers", "apaches", "tigers",
	"rebels", "warriors", "knights", "lions", "wolves", "falcons", "dragons",
	"spartans", "jets", "bluejays", "bison", "bucs",
}

// DefaultNonAthleticsDomains are encyclopedic, reference and merchandise
// sites. Entries are substrings of the domain.
var DefaultNonAthleticsDomains = []string{
	"wikipedia.org", "britannica.com", "encyclopediaofalabama.org",
	"campuswardrobe.com", "shop", "store", "merch", "catalog",
}

// UsedDomains reports whether a domain was already assigned in this run.
type UsedDomains interface {
	Contains(domain string) bool
}

// Scorer holds the immutable inputs of scoring. It is safe to share.
type Scorer struct {
	blacklist      Blacklist
	whitelisted    map[string]bool
	strongKeywords []string
	nonAthletics   []string
}

// New builds a Scorer from the scoring configuration and lookup tables.
// Empty keyword lists fall back to the defaults.
func New(cfg types.ScoringConfig, tables types.Tables) *Scorer {
	strong := lowerAll(cfg.StrongKeywords)
	if len(strong) == 0 {
		strong = lowerAll(DefaultStrongKeywords)
	}
	strong = append(strong, lowerAll(cfg.SportKeywords)...)

	nonAthletics := lowerAll(cfg.NonAthleticsDomains)
	if len(nonAthletics) == 0 {
		nonAthletics = lowerAll(DefaultNonAthleticsDomains)
	}

	whitelisted := make(map[string]bool, len(tables.Whitelist))
	for _, v := range tables.Whitelist {
		if d := Domain(v); d != "" {
			whitelisted[d] = true
		}
	}

	return &Scorer{
		blacklist:      NewBlacklist(tables.Blacklist),
		whitelisted:    whitelisted,
		strongKeywords: strong,
		nonAthletics:   nonAthletics,
	}
}

// Blacklisted reports whether domain matches the blacklist.
func (s *Scorer) Blacklisted(domain string) bool {
	return s.blacklist.Matches(domain)
}

// Score evaluates a single search result for rec.
func (s *Scorer) Score(rec types.InstitutionRecord, item types.SearchResultItem, used UsedDomains) types.Candidate {
	domain := Domain(item.URL)
	c := types.Candidate{
		Domain:  domain,
		URL:     item.URL,
		Title:   item.Title,
		Snippet: item.Snippet,
	}
	add := func(delta int, reason string) {
		c.Score += delta
		c.Reasons = append(c.Reasons, reason)
	}

	title := strings.ToLower(item.Title)
	snippet := strings.ToLower(item.Snippet)
	lowerURL := strings.ToLower(item.URL)
	marker := HasAthleticsMarker(domain, item.URL)

	if s.blacklist.Matches(domain) {
		add(BlacklistPenalty, "blacklisted domain")
	}
	if containsAny(title, MediaMarkers) || containsAny(snippet, MediaMarkers) {
		add(MediaPenalty, "media/recruiting/news snippet")
	}
	if used != nil && used.Contains(domain) {
		add(UsedDomainPenalty, "already used domain")
	}

	switch {
	case strings.HasSuffix(domain, ".com") && marker:
		add(ComAthleticsBonus, ".com with athletics/sports")
	case strings.HasSuffix(domain, ".com"):
		add(ComBonus, ".com generic")
	case strings.HasSuffix(domain, ".org"), strings.HasSuffix(domain, ".net"):
		add(OrgNetBonus, ".org/.net")
	case IsAcademic(domain) && marker:
		add(EduAthleticsBonus, ".edu with athletics/sports")
	case IsAcademic(domain):
		add(EduRootPenalty, ".edu root without athletics")
	}

	matched := 0
	for _, tok := range query.Tokens(rec) {
		if strings.Contains(domain, tok) || strings.Contains(title, tok) || strings.Contains(snippet, tok) {
			matched++
		}
	}
	if matched > 0 {
		add(matched*TokenBonus, fmt.Sprintf("%d school/city/mascot tokens matched", matched))
	}

	if s.whitelisted[domain] {
		add(WhitelistBonus, "domain in whitelist for another school")
	}

	strong := s.hasStrongKeyword(rec, domain, lowerURL)
	var rejects []string
	if containsAny(domain, s.nonAthletics) {
		rejects = append(rejects, "rejected: encyclopedia/store domain")
	}
	if IsAcademic(domain) && !marker {
		rejects = append(rejects, "rejected: .edu root without athletics path")
	}
	if c.Score < types.StrongMatchThreshold && !strong {
		rejects = append(rejects, "rejected: score too low and no strong keyword")
	}
	if domain == "" {
		rejects = append(rejects, "rejected: no domain in result url")
	}

	if len(rejects) > 0 {
		c.Reasons = append(c.Reasons, rejects...)
		c.Score = types.RejectScore
		c.Rejected = true
		return c
	}
	if c.Score < types.StrongMatchThreshold {
		c.Reasons = append(c.Reasons, "accepted with low score due to strong keyword")
	}
	return c
}

// ScoreAll scores every item in service order.
func (s *Scorer) ScoreAll(rec types.InstitutionRecord, items []types.SearchResultItem, used UsedDomains) []types.Candidate {
	out := make([]types.Candidate, 0, len(items))
	for _, it := range items {
		out = append(out, s.Score(rec, it, used))
	}
	return out
}

// hasStrongKeyword implements the strong keyword gate: a generic athletics
// term, a nickname, a sport keyword, or "<mascot>sports"/"<mascot>athletics".
func (s *Scorer) hasStrongKeyword(rec types.InstitutionRecord, domain, lowerURL string) bool {
	haystack := domain + lowerURL
	if containsAny(haystack, s.strongKeywords) {
		return true
	}
	mascot := strings.ToLower(query.Mascot(rec.Name))
	if mascot == "" {
		return false
	}
	return strings.Contains(haystack, mascot+"sports") || strings.Contains(haystack, mascot+"athletics")
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
