package extract

import (
	"fmt"
	"os"

	"github.com/crosscheck-dev/crosscheck/pkg/shared/files"
)

// validateExtractArgs checks the extract command options. A single positional
// argument may stand in for the --reports flag.
func validateExtractArgs(options *RunOptionsExtract, args []string) error {
	if options.ReportsPath == "" && len(args) == 1 {
		options.ReportsPath = args[0]
	}
	if options.ReportsPath == "" {
		return fmt.Errorf("the --reports flag or a reports path argument is required")
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected extra arguments: %v", args[1:])
	}

	reportsPath, err := files.ExpandPath(options.ReportsPath)
	if err != nil {
		return fmt.Errorf("failed to expand reports path %q: %w", options.ReportsPath, err)
	}
	options.ReportsPath = reportsPath
	if _, err := os.Stat(options.ReportsPath); err != nil {
		return fmt.Errorf("reports path %q is not accessible: %w", options.ReportsPath, err)
	}

	if options.ProjectRoot != "" {
		projectRoot, err := files.ExpandPath(options.ProjectRoot)
		if err != nil {
			return fmt.Errorf("failed to expand project root %q: %w", options.ProjectRoot, err)
		}
		options.ProjectRoot = projectRoot
		info, err := os.Stat(options.ProjectRoot)
		if err != nil {
			return fmt.Errorf("project root %q is not accessible: %w", options.ProjectRoot, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("project root %q is not a directory", options.ProjectRoot)
		}
	}
	return nil
}
