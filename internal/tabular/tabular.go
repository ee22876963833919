// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular reads the institution list and appends resolution results
// to the success and errors CSV files.
//
// Input headers are matched case-insensitively against a small alias table,
// so both raw institution lists and the output of an earlier run can be fed
// back in. Output files are only ever appended to; the header is written
// when the file is created.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/domain-finder/pkg/types"
)

// ErrMissingName marks an input row without an institution name.
var ErrMissingName = errors.New("missing institution name")

// OutputColumns is the header of the success and errors files.
var OutputColumns = []string{
	"school_name", "division", "city_state", "type", "conference",
	"athletics_domain", "status", "score", "reason",
}

// Input column roles.
const (
	colName       = "name"
	colDivision   = "division"
	colCity       = "city"
	colConference = "conference"
	colType       = "type"
	colDomain     = "domain"
	colStatus     = "status"
)

// headerAliases maps a normalized header cell to its column role.
var headerAliases = map[string]string{
	"school_name":      colName,
	"name":             colName,
	"school":           colName,
	"institution":      colName,
	"division":         colDivision,
	"city_state":       colCity,
	"city":             colCity,
	"location":         colCity,
	"conference":       colConference,
	"type":             colType,
	"athletics_domain": colDomain,
	"domain":           colDomain,
	"status":           colStatus,
}

// RowError describes an input row that was skipped.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ReadResult holds the parsed institutions and the rows that were skipped.
type ReadResult struct {
	Records []types.InstitutionRecord
	Skipped []*RowError
}

// ReadInstitutions reads the institution list at path.
func ReadInstitutions(path string) (ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("opening input %s: %w", path, err)
	}
	defer f.Close()

	res, err := Read(f)
	if err != nil {
		return ReadResult{}, fmt.Errorf("reading input %s: %w", path, err)
	}
	return res, nil
}

// Read parses CSV institution rows from r. The first row is the header and
// must contain a name column. Rows whose name is empty after cleaning are
// reported in Skipped with ErrMissingName.
func Read(r io.Reader) (ReadResult, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return ReadResult{}, nil
	}
	if err != nil {
		return ReadResult{}, fmt.Errorf("reading header: %w", err)
	}
	cols := mapHeader(header)
	if _, ok := cols[colName]; !ok {
		return ReadResult{}, fmt.Errorf("header has no institution name column: %v", header)
	}

	var res ReadResult
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("parsing row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rec := types.InstitutionRecord{
			Name:        cell(row, cols, colName),
			Division:    cell(row, cols, colDivision),
			CityRegion:  cell(row, cols, colCity),
			Conference:  cell(row, cols, colConference),
			Type:        cell(row, cols, colType),
			PriorDomain: cell(row, cols, colDomain),
			PriorStatus: cell(row, cols, colStatus),
		}.Clean()
		if rec.Name == "" {
			res.Skipped = append(res.Skipped, &RowError{Line: line, Err: ErrMissingName})
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// ReadProcessedNames returns the institution names present in a previous
// output file. A missing file yields an empty set.
func ReadProcessedNames(path string) (map[string]bool, error) {
	names := make(map[string]bool)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}
		return nil, fmt.Errorf("opening previous output %s: %w", path, err)
	}
	defer f.Close()

	res, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading previous output %s: %w", path, err)
	}
	for _, rec := range res.Records {
		names[rec.Name] = true
	}
	return names, nil
}

// ErrorsPath returns the sibling file that receives NOT_FOUND rows:
// "results.csv" becomes "results_errors.csv".
func ErrorsPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	stem := strings.TrimSuffix(outputPath, ext)
	if ext == "" {
		ext = ".csv"
	}
	return stem + "_errors" + ext
}

// Row renders out in OutputColumns order. Unresolved outcomes always carry
// an empty domain.
func Row(out types.ResolutionOutcome) []string {
	domain := out.Domain
	if !out.Status.Resolved() {
		domain = ""
	}
	rec := out.Institution
	return []string{
		rec.Name, rec.Division, rec.CityRegion, rec.Type, rec.Conference,
		domain, string(out.Status), strconv.Itoa(out.Score), out.Reason,
	}
}

// Appender appends outcome rows to one CSV file.
type Appender struct {
	Path string
}

// Append writes outcomes to the end of the file, creating it with a header
// when it does not exist or is empty. An empty slice is a no-op.
func (a *Appender) Append(outcomes []types.ResolutionOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	if dir := filepath.Dir(a.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(a.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", a.Path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat %s: %w", a.Path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		w.Write(OutputColumns)
	}
	for _, out := range outcomes {
		w.Write(Row(out))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", a.Path, err)
	}
	return f.Close()
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// mapHeader returns the index of each recognized column role. The first
// matching column wins.
func mapHeader(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.Join(strings.Fields(h), "_"))
		role, ok := headerAliases[h]
		if !ok {
			continue
		}
		if _, seen := cols[role]; !seen {
			cols[role] = i
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, role string) string {
	i, ok := cols[role]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
