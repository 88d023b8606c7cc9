package compare

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/crosscheck-dev/crosscheck/internal/record"
)

// Options holds the inputs of one comparison invocation.
type Options struct {
	// GroundTruthPath is a ground-truth record file or directory of records.
	GroundTruthPath string
	// CandidatePath is a candidate record file or directory of records.
	CandidatePath string
	// OutputFolder receives a dated results subdirectory.
	OutputFolder string
}

// Outcome lists the files a comparison run produced.
type Outcome struct {
	DetailFiles []string `json:"detailed_files"`
	CSV         string   `json:"csv"`
}

// Runner matches candidate records to ground-truth records by project and
// drives comparison and report emission.
type Runner struct {
	logger hclog.Logger
}

func NewRunner(logger hclog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run compares every ground-truth record against its candidate and writes
// the detail documents plus the CSV summary into a dated subdirectory of
// opts.OutputFolder. Finding no records on either side is a configuration
// error; a project that fails to load or write is logged and skipped without
// aborting the others.
func (r *Runner) Run(opts Options) (*Outcome, error) {
	gtFiles, err := record.Discover(opts.GroundTruthPath)
	if err != nil {
		return nil, fmt.Errorf("failed to discover ground-truth records under %q: %w", opts.GroundTruthPath, err)
	}
	if len(gtFiles) == 0 {
		return nil, fmt.Errorf("no ground-truth intermediate records found under %q", opts.GroundTruthPath)
	}

	candFiles, err := record.Discover(opts.CandidatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to discover candidate records under %q: %w", opts.CandidatePath, err)
	}
	if len(candFiles) == 0 {
		return nil, fmt.Errorf("no candidate intermediate records found under %q", opts.CandidatePath)
	}

	resultsDir := filepath.Join(opts.OutputFolder, time.Now().UTC().Format(dateLayout))
	candidates := r.loadCandidates(candFiles)

	outcome := &Outcome{DetailFiles: []string{}}
	var rows []SummaryRow

	for _, gtPath := range gtFiles {
		groundTruth, err := record.Load(gtPath)
		if err != nil {
			r.logger.Error("failed to load ground-truth record", "path", gtPath, "error", err)
			continue
		}
		project := projectOf(groundTruth, gtPath)

		candidate, ok := candidates[project]
		if !ok {
			r.logger.Warn("no matching candidate record for project, comparing against empty candidate",
				"project", project, "groundtruth", gtPath)
			candidate = loadedRecord{record: record.Empty(project)}
		}

		result := Compare(groundTruth, candidate.record)
		detailPath, err := WriteDetail(resultsDir, project, result)
		if err != nil {
			r.logger.Error("failed to write comparison detail", "project", project, "error", err)
			continue
		}
		outcome.DetailFiles = append(outcome.DetailFiles, detailPath)

		rows = append(rows, SummaryRow{
			Project:      project,
			TP:           result.Summary.TP,
			FP:           result.Summary.FP,
			FN:           result.Summary.FN,
			AnalysisTime: resolveAnalysisTime(candidate.record, result),
		})
		r.logger.Info("wrote detailed comparison", "project", project, "path", detailPath,
			"tp", result.Summary.TP, "fp", result.Summary.FP, "fn", result.Summary.FN)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no project produced a comparison result")
	}

	csvPath, err := WriteSummary(resultsDir, rows)
	if err != nil {
		return nil, err
	}
	outcome.CSV = csvPath
	r.logger.Info("wrote CSV summary", "path", csvPath)
	return outcome, nil
}

type loadedRecord struct {
	path   string
	record *record.Record
}

// loadCandidates maps candidate records by project name. When several files
// declare the same project, the one with the lexicographically greatest
// source path wins. The bare canonical name sorts after timestamp-suffixed
// rewrites, so the record written first under the canonical name stays
// authoritative, and the choice is stable across platforms.
func (r *Runner) loadCandidates(paths []string) map[string]loadedRecord {
	candidates := map[string]loadedRecord{}
	for _, path := range paths {
		rec, err := record.Load(path)
		if err != nil {
			r.logger.Error("failed to load candidate record", "path", path, "error", err)
			continue
		}
		project := projectOf(rec, path)

		if existing, ok := candidates[project]; ok {
			r.logger.Warn("multiple candidate records for project, keeping lexicographically greatest path",
				"project", project, "kept", maxPath(existing.path, path))
			if path < existing.path {
				continue
			}
		}
		candidates[project] = loadedRecord{path: path, record: rec}
	}
	return candidates
}

// projectOf returns the record's declared project, falling back to the file
// basename without extension.
func projectOf(rec *record.Record, path string) string {
	if rec.Project != "" {
		return rec.Project
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func maxPath(a, b string) string {
	if a > b {
		return a
	}
	return b
}

// resolveAnalysisTime picks the analysis timestamp for a summary row through
// an ordered fallback: timing attached to the candidate record, then the
// comparison's own generation timestamp, then the current time.
func resolveAnalysisTime(candidate *record.Record, result *Result) string {
	if candidate != nil && candidate.Metadata.Timing != nil {
		timing := candidate.Metadata.Timing
		chosen := timing.EndTimestamp
		if chosen == nil {
			chosen = timing.StartTimestamp
		}
		if formatted, ok := formatTimestamp(chosen); ok {
			return formatted
		}
	}
	if result != nil && result.GeneratedAt != "" {
		return result.GeneratedAt
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// formatTimestamp renders an epoch number as ISO-8601 UTC and passes
// preformatted strings through unchanged.
func formatTimestamp(v interface{}) (string, bool) {
	switch ts := v.(type) {
	case float64:
		return epochToISO(ts), true
	case int:
		return epochToISO(float64(ts)), true
	case int64:
		return epochToISO(float64(ts)), true
	case string:
		if ts != "" {
			return ts, true
		}
	}
	return "", false
}

func epochToISO(seconds float64) string {
	return time.Unix(0, int64(seconds*float64(time.Second))).UTC().Format(time.RFC3339)
}
