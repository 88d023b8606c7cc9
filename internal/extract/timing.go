package extract

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/crosscheck-dev/crosscheck/internal/record"
)

const (
	timingFileName   = "analysis_time.json"
	metadataFileName = "metadata.json"

	// timingWalkDepth bounds the recursive candidate search below the
	// report directory.
	timingWalkDepth = 2
	// timingAncestorDepth bounds the candidate search above the report
	// directory.
	timingAncestorDepth = 2
)

// TimingResolver locates and interprets run-timing metadata associated with
// a report directory. Missing files, unreadable candidates, and unexpected
// payload shapes are all non-fatal: the resolver tries the next candidate
// and finally reports "no timing available" as a nil result.
type TimingResolver struct {
	logger hclog.Logger
}

func NewTimingResolver(logger hclog.Logger) *TimingResolver {
	return &TimingResolver{logger: logger}
}

// Resolve searches for timing metadata files around reportDir and returns
// the first interpretation that succeeds, or nil when no candidate yields
// timing.
func (r *TimingResolver) Resolve(reportDir string) *record.Timing {
	for _, candidate := range r.candidatePaths(reportDir) {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}

		var payload interface{}
		if err := json.Unmarshal(data, &payload); err != nil {
			r.logger.Debug("skipping unparsable timing metadata", "path", candidate, "error", err)
			continue
		}

		for _, interpret := range timingInterpretations {
			if timing := interpret(payload); timing != nil {
				r.logger.Debug("resolved analysis timing", "path", candidate)
				return timing
			}
		}
	}
	return nil
}

// candidatePaths collects metadata file locations in search order: directly
// under reportDir, under each immediate child, via a depth-bounded walk, and
// in up to two ancestor directories. Duplicates keep their first position.
func (r *TimingResolver) candidatePaths(reportDir string) []string {
	var candidates []string

	candidates = append(candidates,
		filepath.Join(reportDir, timingFileName),
		filepath.Join(reportDir, metadataFileName),
	)

	if entries, err := os.ReadDir(reportDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				child := filepath.Join(reportDir, entry.Name())
				candidates = append(candidates,
					filepath.Join(child, timingFileName),
					filepath.Join(child, metadataFileName),
				)
			}
		}
	}

	// Depth-bounded walk catches analyzers that nest their outputs deeper.
	filepath.WalkDir(reportDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(reportDir, path)
		if relErr == nil && rel != "." && strings.Count(rel, string(filepath.Separator)) > timingWalkDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == timingFileName {
			candidates = append(candidates, path)
		}
		return nil
	})

	cur := reportDir
	for i := 0; i < timingAncestorDepth; i++ {
		parent := filepath.Dir(cur)
		if parent == cur || parent == "" {
			break
		}
		cur = parent
		candidates = append(candidates, filepath.Join(cur, timingFileName))
	}

	seen := map[string]struct{}{}
	var out []string
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// timingInterpretation extracts timing from a decoded metadata payload, or
// reports that the payload shape does not apply.
type timingInterpretation func(payload interface{}) *record.Timing

var timingInterpretations = []timingInterpretation{
	directElapsed,
	beginEndPair,
	nestedElapsed,
}

// directElapsed handles payloads that expose elapsed_seconds at the top
// level, carrying along any accompanying start/end timestamps as-is.
func directElapsed(payload interface{}) *record.Timing {
	d, ok := payload.(map[string]interface{})
	if !ok {
		return nil
	}
	elapsed, ok := asSeconds(d["elapsed_seconds"])
	if !ok {
		return nil
	}
	return &record.Timing{
		StartTimestamp: d["start_timestamp"],
		EndTimestamp:   d["end_timestamp"],
		ElapsedSeconds: &elapsed,
	}
}

// beginEndPair recursively searches for a mapping with both a begin and an
// end timestamp, directly or under a "timestamps" sub-key, and derives
// elapsed = end - begin.
func beginEndPair(payload interface{}) *record.Timing {
	begin, end, ok := findBeginEnd(payload)
	if !ok {
		return nil
	}
	elapsed := end - begin
	return &record.Timing{
		StartTimestamp: begin,
		EndTimestamp:   end,
		ElapsedSeconds: &elapsed,
	}
}

func findBeginEnd(payload interface{}) (float64, float64, bool) {
	switch v := payload.(type) {
	case map[string]interface{}:
		if ts, ok := v["timestamps"].(map[string]interface{}); ok {
			if begin, end, ok := beginEndOf(ts); ok {
				return begin, end, true
			}
		}
		if begin, end, ok := beginEndOf(v); ok {
			return begin, end, true
		}
		for _, nested := range v {
			if begin, end, ok := findBeginEnd(nested); ok {
				return begin, end, true
			}
		}
	case []interface{}:
		for _, item := range v {
			if begin, end, ok := findBeginEnd(item); ok {
				return begin, end, true
			}
		}
	}
	return 0, 0, false
}

func beginEndOf(d map[string]interface{}) (float64, float64, bool) {
	beginRaw, hasBegin := d["begin"]
	endRaw, hasEnd := d["end"]
	if !hasBegin || !hasEnd {
		return 0, 0, false
	}
	begin, ok := asSeconds(beginRaw)
	if !ok {
		return 0, 0, false
	}
	end, ok := asSeconds(endRaw)
	if !ok {
		return 0, 0, false
	}
	return begin, end, true
}

// nestedElapsed recursively searches for an elapsed_seconds field anywhere
// in the payload and returns it alone.
func nestedElapsed(payload interface{}) *record.Timing {
	elapsed, ok := findElapsed(payload)
	if !ok {
		return nil
	}
	return &record.Timing{ElapsedSeconds: &elapsed}
}

func findElapsed(payload interface{}) (float64, bool) {
	switch v := payload.(type) {
	case map[string]interface{}:
		if elapsed, ok := asSeconds(v["elapsed_seconds"]); ok {
			return elapsed, true
		}
		for _, nested := range v {
			if elapsed, ok := findElapsed(nested); ok {
				return elapsed, true
			}
		}
	case []interface{}:
		for _, item := range v {
			if elapsed, ok := findElapsed(item); ok {
				return elapsed, true
			}
		}
	}
	return 0, false
}

// asSeconds accepts the numeric shapes metadata producers use for seconds:
// JSON numbers and numeric strings.
func asSeconds(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
