// Package report parses raw analyzer diagnostic documents into the internal
// findings model. Supported document formats are CodeChecker/clang-sa plist
// reports and SARIF reports. Parsing is deliberately permissive: a malformed
// or unreadable document contributes zero findings and is logged, never
// failing the batch.
package report

import (
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/crosscheck-dev/crosscheck/internal/finding"
	"github.com/crosscheck-dev/crosscheck/pkg/shared/files"
)

// UnknownFile is the sentinel path assigned to diagnostics whose file
// reference cannot be resolved.
const UnknownFile = "<unknown>"

// reportSuffixes are the file name suffixes recognized as raw diagnostic
// documents during discovery.
var reportSuffixes = []string{".plist", ".sarif", ".sarif.json"}

// Document is the result of parsing one raw diagnostic document.
type Document struct {
	// Path is the source document location, kept for log context.
	Path string
	// Findings maps file paths as recorded in the document to diagnostics.
	Findings finding.Set
	// Metadata is the opaque metadata mapping embedded in the document.
	Metadata map[string]interface{}
}

// Discover returns the raw diagnostic documents under path. If path is a
// file it is returned when it carries a known report suffix; otherwise the
// directory is walked recursively. The result is lexicographically sorted
// so document-processing order is stable across platforms.
func Discover(path string) ([]string, error) {
	return files.FindBySuffixes(path, reportSuffixes)
}

// Parse reads one raw diagnostic document and returns its findings and
// embedded metadata. Failures are logged and yield an empty document.
func Parse(path string, logger hclog.Logger) Document {
	doc := Document{
		Path:     path,
		Findings: finding.Set{},
		Metadata: map[string]interface{}{},
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".sarif") || strings.HasSuffix(lower, ".sarif.json"):
		parseSarif(&doc, logger)
	default:
		parsePlist(&doc, logger)
	}
	return doc
}
