// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// InstitutionRecord is one input row describing a school whose athletics
// domain is to be resolved. Only Name is required; every other field may be
// empty. Records are treated as immutable once read.
type InstitutionRecord struct {
	// Name is the institution name as it appears in the input (e.g. "Example State University").
	Name string `json:"school_name" yaml:"school_name"`

	// Division is the competitive division (e.g. "NJCAA D1", "NCAA").
	Division string `json:"division" yaml:"division"`

	// CityRegion is the free-form location (e.g. "Springfield, IL").
	CityRegion string `json:"city_state" yaml:"city_state"`

	// Conference is the athletic conference name.
	Conference string `json:"conference" yaml:"conference"`

	// Type is the institution type (e.g. "public", "private", "community").
	Type string `json:"type" yaml:"type"`

	// PriorDomain and PriorStatus carry an already resolved domain and status
	// when the input file is itself the output of an earlier run.
	PriorDomain string `json:"athletics_domain,omitempty" yaml:"athletics_domain,omitempty"`
	PriorStatus string `json:"status,omitempty" yaml:"status,omitempty"`
}

// placeholders are values produced by spreadsheets and dataframe exports for
// missing cells. They are never allowed into queries or output rows.
var placeholders = map[string]bool{
	"nan":   true,
	"null":  true,
	"none":  true,
	"nil":   true,
	"<nil>": true,
	"n/a":   true,
	"na":    true,
}

// CleanField coerces a raw cell to text: surrounding whitespace is trimmed,
// internal runs of whitespace collapse to one space, and placeholder values
// such as "NaN" or "null" become the empty string.
func CleanField(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if placeholders[strings.ToLower(s)] {
		return ""
	}
	return s
}

// Clean returns a copy of r with every field passed through CleanField.
func (r InstitutionRecord) Clean() InstitutionRecord {
	return InstitutionRecord{
		Name:        CleanField(r.Name),
		Division:    CleanField(r.Division),
		CityRegion:  CleanField(r.CityRegion),
		Conference:  CleanField(r.Conference),
		Type:        CleanField(r.Type),
		PriorDomain: CleanField(r.PriorDomain),
		PriorStatus: CleanField(r.PriorStatus),
	}
}

// OverrideKey returns the "name|division" key used by the override table.
func (r InstitutionRecord) OverrideKey() string {
	return r.Name + "|" + r.Division
}
