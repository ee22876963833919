// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query turns an institution record into a keyword-search query and
// derives the tokens the scorer looks for in search results.
package query

import (
	"strings"
	"unicode"

	"github.com/pdiddy/domain-finder/pkg/types"
)

// Suffix is appended to every query.
const Suffix = "athletics official site"

// genericQualifiers are name words that never identify a particular school.
var genericQualifiers = map[string]bool{
	"college":    true,
	"university": true,
	"state":      true,
	"community":  true,
	"technical":  true,
	"junior":     true,
	"school":     true,
}

// Build returns the search query for rec. Tokens appear in fixed order: name,
// city/region, conference, mascot keyword, then Suffix. Empty fields are
// dropped rather than left as blank tokens.
func Build(rec types.InstitutionRecord) string {
	rec = rec.Clean()
	parts := []string{
		rec.Name,
		rec.CityRegion,
		rec.Conference,
		Mascot(rec.Name),
		Suffix,
	}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Mascot returns the first word of name that is not a generic qualifier
// such as "college" or "state". It returns "" when every word is generic.
func Mascot(name string) string {
	for _, word := range strings.Fields(types.CleanField(name)) {
		w := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w == "" || genericQualifiers[strings.ToLower(w)] {
			continue
		}
		return w
	}
	return ""
}

// Tokens returns the distinct lowercase tokens used for match scoring:
// alphanumeric words longer than two characters from the name and the
// city/region, the mascot keyword, and the whole conference name. Order is
// first-seen, so the result is deterministic for a given record.
func Tokens(rec types.InstitutionRecord) []string {
	rec = rec.Clean()
	seen := make(map[string]bool)
	var tokens []string
	add := func(t string) {
		t = strings.ToLower(t)
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		tokens = append(tokens, t)
	}

	for _, w := range splitWords(rec.Name) {
		add(w)
	}
	for _, w := range splitWords(rec.CityRegion) {
		add(w)
	}
	add(Mascot(rec.Name))
	add(rec.Conference)
	return tokens
}

// splitWords splits s on every non-alphanumeric rune and keeps words longer
// than two characters.
func splitWords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out []string
	for _, f := range fields {
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}
