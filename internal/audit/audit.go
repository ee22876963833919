// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit appends every resolution outcome, with its full scored
// candidate list, to a YAML document stream. One document per institution;
// documents from successive runs of the same file are told apart by run_id.
package audit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/domain-finder/pkg/types"
)

// Entry is one audit document.
type Entry struct {
	RunID   string                  `yaml:"run_id"`
	Time    time.Time               `yaml:"time"`
	Outcome types.ResolutionOutcome `yaml:"outcome"`
}

// Trail writes entries for one run. A Trail with an empty Path discards
// everything.
type Trail struct {
	Path  string
	RunID string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Record appends one document per outcome.
func (t *Trail) Record(outcomes []types.ResolutionOutcome) error {
	if t == nil || t.Path == "" || len(outcomes) == 0 {
		return nil
	}
	now := t.Now
	if now == nil {
		now = time.Now
	}

	var buf bytes.Buffer
	for _, out := range outcomes {
		data, err := yaml.Marshal(Entry{RunID: t.RunID, Time: now().UTC(), Outcome: out})
		if err != nil {
			return fmt.Errorf("marshaling audit entry for %s: %w", out.Institution.Name, err)
		}
		buf.WriteString("---\n")
		buf.Write(data)
	}

	if dir := filepath.Dir(t.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(t.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit trail %s: %w", t.Path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("writing audit trail %s: %w", t.Path, err)
	}
	return f.Close()
}

// ReadAll decodes every document in the audit trail at path.
func ReadAll(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening audit trail %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	dec := yaml.NewDecoder(f)
	for {
		var e Entry
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entries, fmt.Errorf("decoding audit trail %s: %w", path, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
