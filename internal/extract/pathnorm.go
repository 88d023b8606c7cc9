package extract

import (
	"path/filepath"
	"strings"

	"github.com/crosscheck-dev/crosscheck/pkg/shared/files"
)

// pathStrategy maps a raw diagnostic path to a canonical project-relative
// form, or reports that it does not apply. Strategies are tried in order and
// the first success wins; the final strategy always succeeds.
type pathStrategy func(rawPath, projectRoot string) (string, bool)

var pathStrategies = []pathStrategy{
	relativeToRoot,
	afterRootBasename,
	forwardSlashes,
}

// NormalizePath maps a file path recorded in a diagnostic to a canonical,
// project-relative form. It never fails: any strategy-internal problem
// falls through to the next strategy.
func NormalizePath(rawPath, projectRoot string) string {
	for _, strategy := range pathStrategies {
		if mapped, ok := strategy(rawPath, projectRoot); ok {
			return mapped
		}
	}
	return rawPath
}

// relativeToRoot computes rawPath relative to projectRoot, accepting the
// result only when it stays inside the root and is no longer absolute.
func relativeToRoot(rawPath, projectRoot string) (string, bool) {
	if projectRoot == "" {
		return "", false
	}

	absPath, err := files.EnsureWithinRoot(projectRoot, rawPath)
	if err != nil {
		return "", false
	}
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || filepath.IsAbs(rel) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// afterRootBasename locates the rightmost occurrence of the root's basename
// inside rawPath and returns everything after it. This recovers paths
// recorded under a different mount point or a relocated copy of the tree.
func afterRootBasename(rawPath, projectRoot string) (string, bool) {
	if projectRoot == "" {
		return "", false
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", false
	}
	rootName := filepath.Base(absRoot)
	if rootName == "" || rootName == "." || rootName == string(filepath.Separator) {
		return "", false
	}

	idx := strings.LastIndex(rawPath, rootName)
	if idx < 0 {
		return "", false
	}
	candidate := strings.TrimLeft(rawPath[idx+len(rootName):], "/\\")
	if candidate == "" {
		return "", false
	}
	return strings.ReplaceAll(candidate, "\\", "/"), true
}

// forwardSlashes returns rawPath normalized to forward-slash separators,
// otherwise unchanged. Always succeeds.
func forwardSlashes(rawPath, _ string) (string, bool) {
	return strings.ReplaceAll(rawPath, "\\", "/"), true
}
