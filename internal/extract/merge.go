package extract

import (
	"sort"

	"github.com/crosscheck-dev/crosscheck/internal/finding"
	"github.com/crosscheck-dev/crosscheck/internal/report"
)

// Merge combines findings from multiple parsed documents into a single
// deduplicated mapping. Documents are processed in the given order; only the
// first occurrence of each identity key is kept, preserving relative order
// across documents. The first document carrying non-empty embedded metadata
// determines the merged metadata; later metadata is discarded even when
// non-empty, which keeps rebuilds reproducible.
func Merge(docs []report.Document) (finding.Set, map[string]interface{}) {
	merged := finding.Set{}
	seen := map[finding.Key]struct{}{}
	var embedded map[string]interface{}

	for _, doc := range docs {
		if embedded == nil && len(doc.Metadata) > 0 {
			embedded = doc.Metadata
		}
		for _, file := range sortedFiles(doc.Findings) {
			for _, f := range doc.Findings[file] {
				key := finding.NewKey(file, f)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				merged[file] = append(merged[file], f)
			}
		}
	}

	return merged, embedded
}

// normalizeSet remaps every file path through NormalizePath and re-runs
// per-key deduplication, since distinct raw paths may collapse onto the same
// canonical path.
func normalizeSet(s finding.Set, projectRoot string) finding.Set {
	out := finding.Set{}
	seen := map[finding.Key]struct{}{}

	for _, file := range sortedFiles(s) {
		mapped := NormalizePath(file, projectRoot)
		for _, f := range s[file] {
			key := finding.NewKey(mapped, f)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out[mapped] = append(out[mapped], f)
		}
	}
	return out
}

func sortedFiles(s finding.Set) []string {
	files := make([]string, 0, len(s))
	for file := range s {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}
