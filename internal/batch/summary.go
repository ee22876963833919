// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/domain-finder/pkg/types"
)

// Summary holds the counts of one batch run.
type Summary struct {
	Processed    int
	Found        int
	NotConfident int
	NotFound     int
	SearchErrors int
	Resumed      int
	Malformed    int
	Checkpoints  int
	Elapsed      time.Duration
}

// Add counts one outcome.
func (s *Summary) Add(out types.ResolutionOutcome) {
	s.Processed++
	switch out.Status {
	case types.StatusFound:
		s.Found++
	case types.StatusFoundNotConfident:
		s.NotConfident++
	default:
		s.NotFound++
	}
}

// Print writes the end-of-run report.
func (s Summary) Print(w io.Writer, outputPath, errorsPath string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "processing complete")
	fmt.Fprintln(w, rule)
	row := func(label string, v any) { fmt.Fprintf(w, "%-22s %v\n", label+":", v) }
	row("processed", s.Processed)
	row("found", s.Found)
	row("found, not confident", s.NotConfident)
	row("not found", s.NotFound)
	if s.SearchErrors > 0 {
		row("search errors", s.SearchErrors)
	}
	if s.Resumed > 0 {
		row("skipped (resumed)", s.Resumed)
	}
	if s.Malformed > 0 {
		row("malformed rows", s.Malformed)
	}
	row("elapsed", s.Elapsed.Round(time.Second))
	fmt.Fprintf(w, "saved: %s and %s\n", outputPath, errorsPath)
	fmt.Fprintln(w, rule)
}
