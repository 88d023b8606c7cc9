// Package compare computes TP/FP/FN metrics between two intermediate
// records and emits per-project detail reports plus an aggregated CSV
// summary.
package compare

import (
	"sort"
	"time"

	"github.com/crosscheck-dev/crosscheck/internal/finding"
	"github.com/crosscheck-dev/crosscheck/internal/record"
)

// Summary holds the overall finding counts of one comparison.
type Summary struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	FN int `json:"fn"`
}

// Precision is |TP| / (|TP|+|FP|), defined as 0.0 for an empty denominator.
func (s Summary) Precision() float64 {
	if s.TP+s.FP == 0 {
		return 0.0
	}
	return float64(s.TP) / float64(s.TP+s.FP)
}

// Recall is |TP| / (|TP|+|FN|), defined as 0.0 for an empty denominator.
func (s Summary) Recall() float64 {
	if s.TP+s.FN == 0 {
		return 0.0
	}
	return float64(s.TP) / float64(s.TP+s.FN)
}

// CheckerStats breaks one comparison down for a single checker, with detail
// records for manual inspection.
type CheckerStats struct {
	TP        int              `json:"tp"`
	FP        int              `json:"fp"`
	FN        int              `json:"fn"`
	TPDetails []finding.Detail `json:"tp_details"`
	FPDetails []finding.Detail `json:"fp_details"`
	FNDetails []finding.Detail `json:"fn_details"`
}

// Result is the outcome of comparing a candidate record against a
// ground-truth record.
type Result struct {
	Project     string                   `json:"project"`
	Summary     Summary                  `json:"summary"`
	ByChecker   map[string]*CheckerStats `json:"by_checker"`
	GeneratedAt string                   `json:"generated_at"`
}

// Compare computes TP/FP/FN sets between the ground-truth and candidate
// records. Matching is purely by the exact (file, checker, line, message)
// key; there is no fuzzy or line-window tolerance, which keeps results
// reproducible across runs.
func Compare(groundTruth, candidate *record.Record) *Result {
	project := groundTruth.Project
	if project == "" {
		project = candidate.Project
	}
	if project == "" {
		project = "unknown"
	}

	gtKeys := groundTruth.Files.Keys()
	candKeys := candidate.Files.Keys()

	var tp, fp, fn []finding.Key
	for key := range gtKeys {
		if _, ok := candKeys[key]; ok {
			tp = append(tp, key)
		} else {
			fn = append(fn, key)
		}
	}
	for key := range candKeys {
		if _, ok := gtKeys[key]; !ok {
			fp = append(fp, key)
		}
	}
	sortKeys(tp)
	sortKeys(fp)
	sortKeys(fn)

	result := &Result{
		Project:     project,
		Summary:     Summary{TP: len(tp), FP: len(fp), FN: len(fn)},
		ByChecker:   map[string]*CheckerStats{},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, key := range tp {
		stats := result.checkerStats(key.Checker)
		stats.TP++
		stats.TPDetails = append(stats.TPDetails, key.Detail())
	}
	for _, key := range fp {
		stats := result.checkerStats(key.Checker)
		stats.FP++
		stats.FPDetails = append(stats.FPDetails, key.Detail())
	}
	for _, key := range fn {
		stats := result.checkerStats(key.Checker)
		stats.FN++
		stats.FNDetails = append(stats.FNDetails, key.Detail())
	}

	return result
}

func (r *Result) checkerStats(checker string) *CheckerStats {
	stats, ok := r.ByChecker[checker]
	if !ok {
		stats = &CheckerStats{
			TPDetails: []finding.Detail{},
			FPDetails: []finding.Detail{},
			FNDetails: []finding.Detail{},
		}
		r.ByChecker[checker] = stats
	}
	return stats
}

// sortKeys orders keys deterministically so detail output is stable from
// run to run.
func sortKeys(keys []finding.Key) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Checker != b.Checker {
			return a.Checker < b.Checker
		}
		if a.LineKnown != b.LineKnown {
			return !a.LineKnown
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Message < b.Message
	})
}
