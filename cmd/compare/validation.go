package compare

import (
	"fmt"
	"os"

	"github.com/crosscheck-dev/crosscheck/pkg/shared/files"
)

// validateCompareArgs checks the compare command options.
func validateCompareArgs(options *RunOptionsCompare, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if options.GroundTruthPath == "" {
		return fmt.Errorf("the --groundtruth flag is required")
	}
	if options.CandidatePath == "" {
		return fmt.Errorf("the --candidate flag is required")
	}

	groundTruthPath, err := files.ExpandPath(options.GroundTruthPath)
	if err != nil {
		return fmt.Errorf("failed to expand ground-truth path %q: %w", options.GroundTruthPath, err)
	}
	options.GroundTruthPath = groundTruthPath
	candidatePath, err := files.ExpandPath(options.CandidatePath)
	if err != nil {
		return fmt.Errorf("failed to expand candidate path %q: %w", options.CandidatePath, err)
	}
	options.CandidatePath = candidatePath

	if _, err := os.Stat(options.GroundTruthPath); err != nil {
		return fmt.Errorf("ground-truth path %q is not accessible: %w", options.GroundTruthPath, err)
	}
	if _, err := os.Stat(options.CandidatePath); err != nil {
		return fmt.Errorf("candidate path %q is not accessible: %w", options.CandidatePath, err)
	}
	return nil
}
