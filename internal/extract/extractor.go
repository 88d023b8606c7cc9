// Package extract builds normalized intermediate records from raw analyzer
// diagnostic documents: it parses and merges documents, canonicalizes file
// paths against the project root, resolves analysis timing, and persists the
// per-project record.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/crosscheck-dev/crosscheck/internal/record"
	"github.com/crosscheck-dev/crosscheck/internal/report"
)

// Options holds the inputs for building one project's intermediate record.
type Options struct {
	// ReportsPath is a diagnostic document or a directory of documents.
	ReportsPath string
	// OutputFolder receives the persisted intermediate record.
	OutputFolder string
	// ProjectName overrides the project name derived from the report
	// directory basename.
	ProjectName string
	// ProjectRoot, when set, is the tree diagnostic paths are relativized
	// against.
	ProjectRoot string
}

// Extractor assembles and persists intermediate records.
type Extractor struct {
	logger hclog.Logger
	timing *TimingResolver
}

func New(logger hclog.Logger) *Extractor {
	return &Extractor{
		logger: logger,
		timing: NewTimingResolver(logger),
	}
}

// Run builds the intermediate record for one project and writes it under
// opts.OutputFolder. It returns the path of the written record. Finding no
// documents at all is a hard error; individual malformed documents only
// contribute zero findings.
func (e *Extractor) Run(opts Options) (string, error) {
	docPaths, err := report.Discover(opts.ReportsPath)
	if err != nil {
		return "", fmt.Errorf("failed to discover diagnostic documents under %q: %w", opts.ReportsPath, err)
	}
	if len(docPaths) == 0 {
		return "", fmt.Errorf("no diagnostic documents found under %q", opts.ReportsPath)
	}

	docs := make([]report.Document, 0, len(docPaths))
	for _, path := range docPaths {
		doc := report.Parse(path, e.logger)
		e.logger.Debug("parsed diagnostic document", "path", path, "findings", doc.Findings.Count())
		docs = append(docs, doc)
	}

	merged, embedded := Merge(docs)
	merged = normalizeSet(merged, opts.ProjectRoot)
	if embedded == nil {
		embedded = map[string]interface{}{}
	}

	reportDir := opts.ReportsPath
	if info, err := os.Stat(opts.ReportsPath); err == nil && !info.IsDir() {
		reportDir = filepath.Dir(opts.ReportsPath)
	}

	rec := &record.Record{
		Project: projectName(opts.ProjectName, reportDir),
		Files:   merged,
		Metadata: record.Metadata{
			ExtractedAt:         time.Now().UTC().Format(time.RFC3339),
			SourceDocumentCount: len(docPaths),
			EmbeddedMetadata:    embedded,
			Timing:              e.timing.Resolve(reportDir),
			RunID:               uuid.NewString(),
		},
	}

	outPath, err := rec.Save(opts.OutputFolder)
	if err != nil {
		return "", err
	}
	e.logger.Info("wrote intermediate record",
		"project", rec.Project, "path", outPath,
		"documents", len(docPaths), "findings", merged.Count())
	return outPath, nil
}

// projectName picks the project name: explicit override, report directory
// basename, then "unknown".
func projectName(override, reportDir string) string {
	if override != "" {
		return override
	}
	if abs, err := filepath.Abs(reportDir); err == nil {
		if base := filepath.Base(abs); base != "" && base != "." && base != string(filepath.Separator) {
			return base
		}
	}
	return "unknown"
}
