// Package record defines the canonical per-project intermediate record
// persisted between the extraction and comparison stages.
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crosscheck-dev/crosscheck/internal/finding"
	"github.com/crosscheck-dev/crosscheck/pkg/shared/files"
)

// TimestampSuffixLayout names collision-suffixed record files, e.g.
// "openssl.20250102T150405Z.json".
const TimestampSuffixLayout = "20060102T150405Z"

// Timing holds analysis run timing recovered from report metadata. Start and
// end timestamps are untyped because producers write either epoch numbers or
// preformatted strings; consumers interpret both.
type Timing struct {
	StartTimestamp interface{} `json:"start_timestamp,omitempty"`
	EndTimestamp   interface{} `json:"end_timestamp,omitempty"`
	ElapsedSeconds *float64    `json:"elapsed_seconds,omitempty"`
}

// Metadata describes how and when a record was extracted.
type Metadata struct {
	ExtractedAt         string                 `json:"extracted_at"`
	SourceDocumentCount int                    `json:"source_document_count"`
	EmbeddedMetadata    map[string]interface{} `json:"embedded_metadata"`
	Timing              *Timing                `json:"timing,omitempty"`
	RunID               string                 `json:"run_id,omitempty"`
}

// Record is one project's normalized analysis output.
type Record struct {
	Project  string      `json:"project"`
	Files    finding.Set `json:"files"`
	Metadata Metadata    `json:"metadata"`
}

// Empty returns a record with no findings for the given project. It stands
// in for a missing candidate so a ground-truth project still produces a
// comparison (all its findings become false negatives).
func Empty(project string) *Record {
	return &Record{
		Project: project,
		Files:   finding.Set{},
	}
}

// Load reads an intermediate record from path.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intermediate record %q: %w", path, err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode intermediate record %q: %w", path, err)
	}
	if r.Files == nil {
		r.Files = finding.Set{}
	}
	return &r, nil
}

// Save persists the record as <project>.json under outDir. Records are
// immutable once written: when the canonical name is taken, a UTC timestamp
// suffix redirects the write instead of overwriting the earlier record.
// Returns the path actually written.
func (r *Record) Save(outDir string) (string, error) {
	if err := files.CreateFolderIfNotExists(outDir); err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("%s.json", r.Project))
	if _, err := os.Stat(outPath); err == nil {
		ts := time.Now().UTC().Format(TimestampSuffixLayout)
		outPath = filepath.Join(outDir, fmt.Sprintf("%s.%s.json", r.Project, ts))
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode intermediate record for %q: %w", r.Project, err)
	}
	if err := files.WriteJsonFile(outPath, data); err != nil {
		return "", fmt.Errorf("failed to write intermediate record %q: %w", outPath, err)
	}
	return outPath, nil
}

// Discover returns the intermediate record files under path (a .json file or
// a directory walked recursively), lexicographically sorted.
func Discover(path string) ([]string, error) {
	return files.FindBySuffixes(path, []string{".json"})
}
