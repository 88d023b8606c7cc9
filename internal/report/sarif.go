package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/crosscheck-dev/crosscheck/internal/finding"
)

func readSarifReport(inputPath string) (*sarif.Report, error) {
	jsonFile, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, err
	}

	var sarifReport sarif.Report
	if err := json.Unmarshal(byteValue, &sarifReport); err != nil {
		return nil, err
	}
	return &sarifReport, nil
}

// parseSarif fills doc from a SARIF report. Results map onto the same
// findings-by-file shape as plist diagnostics: rule id becomes the checker,
// the result message text becomes the message, and the first physical
// location supplies file and line.
func parseSarif(doc *Document, logger hclog.Logger) {
	sarifReport, err := readSarifReport(doc.Path)
	if err != nil {
		logger.Error("failed to decode SARIF document", "path", doc.Path, "error", err)
		return
	}

	for _, run := range sarifReport.Runs {
		if run == nil {
			continue
		}
		if driver := run.Tool.Driver; driver != nil && len(doc.Metadata) == 0 {
			tool := map[string]interface{}{"name": driver.Name}
			if driver.SemanticVersion != nil {
				tool["version"] = *driver.SemanticVersion
			}
			doc.Metadata = map[string]interface{}{"tool": tool}
		}

		for _, result := range run.Results {
			if result == nil {
				continue
			}

			checker := ""
			if result.RuleID != nil {
				checker = *result.RuleID
			}
			message := ""
			if result.Message.Text != nil {
				message = *result.Message.Text
			}

			filePath, line := extractSarifLocation(result)
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
}

// extractSarifLocation returns the artifact URI and start line of the first
// physical location, when present.
func extractSarifLocation(result *sarif.Result) (string, *int) {
	if len(result.Locations) == 0 {
		return "", nil
	}
	loc := result.Locations[0]
	if loc == nil || loc.PhysicalLocation == nil {
		return "", nil
	}

	filePath := ""
	if artifact := loc.PhysicalLocation.ArtifactLocation; artifact != nil && artifact.URI != nil {
		filePath = *artifact.URI
	}

	var line *int
	if region := loc.PhysicalLocation.Region; region != nil && region.StartLine != nil {
		n := *region.StartLine
		line = &n
	}
	return filePath, line
}
