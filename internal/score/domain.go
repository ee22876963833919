// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"net/url"
	"strings"
)

// AcademicTLD is the top-level domain of institutional homepages.
const AcademicTLD = ".edu"

// athleticsMarkers identify an athletics site or path in a domain or URL.
var athleticsMarkers = []string{"athletics", "sports", "athleticdepartment", "athletic-department"}

// Domain returns the normalized host of rawURL: lowercased, without port,
// with a leading "www." removed. A URL without a scheme is read as http.
// It returns "" when no host can be found.
func Domain(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return NormalizeDomain(u.Hostname())
}

// NormalizeDomain lowercases host and strips a leading "www.".
func NormalizeDomain(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}

// IsAcademic reports whether domain ends in the academic top-level domain.
func IsAcademic(domain string) bool {
	return strings.HasSuffix(strings.ToLower(domain), AcademicTLD)
}

// HasAthleticsMarker reports whether the domain or the URL contains an
// athletics marker such as "athletics" or "sports".
func HasAthleticsMarker(domain, rawURL string) bool {
	return containsAny(strings.ToLower(domain)+" "+strings.ToLower(rawURL), athleticsMarkers)
}

// IsBareAcademic reports whether value names an academic domain with no
// athletics marker, i.e. a generic institutional homepage. value may be a
// domain or a URL.
func IsBareAcademic(value string) bool {
	d := Domain(value)
	if d == "" {
		d = NormalizeDomain(value)
	}
	return IsAcademic(d) && !HasAthleticsMarker(d, value)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// Blacklist is a set of domain substrings that can never be selected.
type Blacklist []string

// NewBlacklist lowercases and trims entries, dropping empty ones.
func NewBlacklist(entries []string) Blacklist {
	out := make(Blacklist, 0, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether any blacklist entry is a substring of domain.
func (b Blacklist) Matches(domain string) bool {
	return containsAny(strings.ToLower(domain), b)
}
