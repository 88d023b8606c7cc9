package compare

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosscheck-dev/crosscheck/internal/finding"
	"github.com/crosscheck-dev/crosscheck/internal/record"
)

func TestWriteDetail(t *testing.T) {
	outDir := t.TempDir()
	gt := recordWith("openssl", finding.Set{
		"f.c": {{Checker: "checkerA", Message: "leak", Line: intPtr(10)}},
	})
	result := Compare(gt, record.Empty("openssl"))

	path, err := WriteDetail(outDir, "openssl", result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "openssl.comparison.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.Summary, decoded.Summary)
	require.Contains(t, decoded.ByChecker, "checkerA")
	assert.Len(t, decoded.ByChecker["checkerA"].FNDetails, 1)
	// untouched buckets serialize as empty lists, not null
	assert.NotNil(t, decoded.ByChecker["checkerA"].TPDetails)
}

func TestWriteDetailNeverOverwrites(t *testing.T) {
	outDir := t.TempDir()
	result := Compare(record.Empty("p"), record.Empty("p"))

	first, err := WriteDetail(outDir, "p", result)
	require.NoError(t, err)
	second, err := WriteDetail(outDir, "p", result)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(filepath.Base(second), "p.comparison."))
	if _, err := os.Stat(first); err != nil {
		t.Fatalf("expected first detail file to survive: %v", err)
	}
}

func TestWriteSummary(t *testing.T) {
	outDir := t.TempDir()
	rows := []SummaryRow{
		{Project: "alpha", TP: 9, FP: 1, FN: 0, AnalysisTime: "2025-01-02T15:04:05Z"},
		{Project: "beta", TP: 0, FP: 10, FN: 10, AnalysisTime: "2025-01-02T16:04:05Z"},
	}

	path, err := WriteSummary(outDir, rows)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 2 projects + all

	assert.Equal(t, []string{"project_name", "tp", "fp", "fn", "analysis_time", "precision", "recall"}, records[0])

	assert.Equal(t, []string{"alpha", "9", "1", "0", "2025-01-02T15:04:05Z", "0.9000", "1.0000"}, records[1])
	assert.Equal(t, "beta", records[2][0])
	assert.Equal(t, "0.0000", records[2][5])

	// The "all" row recomputes from summed counts: 9/(9+11) = 0.45, not the
	// average of per-project precisions (0.45 != (0.9+0.0)/2).
	all := records[3]
	assert.Equal(t, "all", all[0])
	assert.Equal(t, "9", all[1])
	assert.Equal(t, "11", all[2])
	assert.Equal(t, "10", all[3])
	assert.Equal(t, "0.4500", all[5])
	assert.Equal(t, "0.4737", all[6])
}

func TestWriteSummaryFillsMissingAnalysisTime(t *testing.T) {
	outDir := t.TempDir()
	path, err := WriteSummary(outDir, []SummaryRow{{Project: "p", TP: 1}})
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.NotEmpty(t, records[1][4])
}
