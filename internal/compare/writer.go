package compare

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crosscheck-dev/crosscheck/internal/record"
	"github.com/crosscheck-dev/crosscheck/pkg/shared/files"
)

// dateLayout names the daily CSV summary file.
const dateLayout = "20060102"

// WriteDetail persists the per-project comparison document as
// <project>.comparison.json under outDir. An existing file is never
// overwritten: the write is redirected to a UTC-timestamp-suffixed name.
func WriteDetail(outDir, project string, result *Result) (string, error) {
	if err := files.CreateFolderIfNotExists(outDir); err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("%s.comparison.json", project))
	if _, err := os.Stat(outPath); err == nil {
		ts := time.Now().UTC().Format(record.TimestampSuffixLayout)
		outPath = filepath.Join(outDir, fmt.Sprintf("%s.comparison.%s.json", project, ts))
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison for %q: %w", project, err)
	}
	if err := files.WriteJsonFile(outPath, data); err != nil {
		return "", fmt.Errorf("failed to write comparison %q: %w", outPath, err)
	}
	return outPath, nil
}

// SummaryRow is one project's line in the aggregate CSV summary.
type SummaryRow struct {
	Project      string
	TP           int
	FP           int
	FN           int
	AnalysisTime string
}

// WriteSummary emits the aggregate CSV table: one row per project plus a
// final "all" row. The aggregate precision/recall are recomputed from the
// summed counts, not averaged over per-project values, so projects with
// unequal finding counts weigh in correctly.
func WriteSummary(outDir string, rows []SummaryRow) (string, error) {
	if err := files.CreateFolderIfNotExists(outDir); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, fmt.Sprintf("%s.csv", time.Now().UTC().Format(dateLayout)))

	file, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary %q: %w", outPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"project_name", "tp", "fp", "fn", "analysis_time", "precision", "recall"}); err != nil {
		return "", fmt.Errorf("failed to write summary header: %w", err)
	}

	totals := Summary{}
	for _, row := range rows {
		totals.TP += row.TP
		totals.FP += row.FP
		totals.FN += row.FN

		rowSummary := Summary{TP: row.TP, FP: row.FP, FN: row.FN}
		analysisTime := row.AnalysisTime
		if analysisTime == "" {
			analysisTime = time.Now().UTC().Format(time.RFC3339)
		}
		if err := writer.Write(csvRow(row.Project, rowSummary, analysisTime)); err != nil {
			return "", fmt.Errorf("failed to write summary row for %q: %w", row.Project, err)
		}
	}

	aggregateTime := time.Now().UTC().Format(time.RFC3339)
	if err := writer.Write(csvRow("all", totals, aggregateTime)); err != nil {
		return "", fmt.Errorf("failed to write aggregate summary row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush summary %q: %w", outPath, err)
	}
	return outPath, nil
}

func csvRow(project string, s Summary, analysisTime string) []string {
	return []string{
		project,
		fmt.Sprintf("%d", s.TP),
		fmt.Sprintf("%d", s.FP),
		fmt.Sprintf("%d", s.FN),
		analysisTime,
		fmt.Sprintf("%.4f", s.Precision()),
		fmt.Sprintf("%.4f", s.Recall()),
	}
}
