package report

import (
	"encoding/json"
	"os"

	"github.com/hashicorp/go-hclog"
	"howett.net/plist"

	"github.com/crosscheck-dev/crosscheck/internal/finding"
)

// parsePlist fills doc from a CodeChecker/clang-sa plist report. The payload
// is decoded into untyped values because real-world plists are loose about
// field types (e.g. `path` may be a string or an array of dicts); a typed
// schema would reject documents the pipeline must tolerate.
func parsePlist(doc *Document, logger hclog.Logger) {
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		logger.Error("failed to read report document", "path", doc.Path, "error", err)
		return
	}

	var payload interface{}
	if _, err := plist.Unmarshal(data, &payload); err != nil {
		// Some producers write the same schema as plain JSON.
		if jsonErr := json.Unmarshal(data, &payload); jsonErr != nil {
			logger.Error("failed to decode report document", "path", doc.Path, "error", err)
			return
		}
	}

	root, ok := asDict(payload)
	if !ok {
		logger.Error("report document has no top-level mapping", "path", doc.Path)
		return
	}

	filesList, _ := asSlice(root["files"])
	diagnostics, _ := asSlice(root["diagnostics"])
	if metadata, ok := asDict(root["metadata"]); ok {
		doc.Metadata = metadata
	}

	for _, rawDiag := range diagnostics {
		diag, ok := asDict(rawDiag)
		if !ok {
			continue
		}

		checker := firstString(diag, "check_name", "category")
		message := firstString(diag, "description", "message")

		var line *int
		filePath := ""
		if location, ok := asDict(diag["location"]); ok {
			if n, ok := asInt(location["line"]); ok {
				line = &n
			}
			if idx, ok := asInt(location["file"]); ok && idx >= 0 && idx < len(filesList) {
				filePath, _ = asString(filesList[idx])
			}
		}

		// Some diagnostics carry the path directly instead of a file index.
		if filePath == "" {
			filePath = firstString(diag, "file_path", "path")
		}
		if filePath == "" {
			filePath = UnknownFile
		}

		doc.Findings[filePath] = append(doc.Findings[filePath], finding.Finding{
			Checker: checker,
			Message: message,
			Line:    line,
		})
	}
}

func asDict(v interface{}) (map[string]interface{}, bool) {
	d, ok := v.(map[string]interface{})
	return d, ok
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt accepts the numeric representations the plist and JSON decoders
// produce for integers.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// firstString returns the first non-empty string value among the given keys.
func firstString(d map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := asString(d[key]); ok && s != "" {
			return s
		}
	}
	return ""
}
