package compare

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	comparator "github.com/crosscheck-dev/crosscheck/internal/compare"
	"github.com/crosscheck-dev/crosscheck/pkg/shared/config"
	"github.com/crosscheck-dev/crosscheck/pkg/shared/logger"
)

// RunOptionsCompare holds the arguments for the compare command.
type RunOptionsCompare struct {
	GroundTruthPath string
	CandidatePath   string
	OutputFolder    string
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	compareOptions      RunOptionsCompare
	exampleCompareUsage = `  # Comparing a directory of candidate records against ground-truth records
  crosscheck compare --groundtruth /path/to/groundtruth --candidate /path/to/candidate

  # Comparing single record files and choosing the results directory
  crosscheck compare -g gt/openssl.json -c runs/openssl.json --output /path/to/results`
)

// CompareCmd represents the compare command.
var CompareCmd = &cobra.Command{
	Use:                   "compare --groundtruth/-g PATH --candidate/-c PATH [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCompareUsage,
	Short:                 "Compares candidate intermediate records against a ground truth and produces summaries",
	RunE:                  runCompareCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runCompareCommand executes the compare command.
func runCompareCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-compare")

	if err := validateCompareArgs(&compareOptions, args); err != nil {
		logger.Error("invalid compare arguments", "error", err)
		return err
	}
	compareOptions.OutputFolder = config.SetThen(compareOptions.OutputFolder, AppConfig.Compare.OutputFolder)

	runner := comparator.NewRunner(logger)
	outcome, err := runner.Run(comparator.Options{
		GroundTruthPath: compareOptions.GroundTruthPath,
		CandidatePath:   compareOptions.CandidatePath,
		OutputFolder:    compareOptions.OutputFolder,
	})
	if err != nil {
		logger.Error("comparison failed", "error", err)
		return err
	}

	// Emit the produced file list as JSON for scripting convenience.
	encoded, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to encode comparison outcome: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

func init() {
	CompareCmd.Flags().StringVarP(&compareOptions.GroundTruthPath, "groundtruth", "g", "", "path to a ground-truth record file or directory")
	CompareCmd.Flags().StringVarP(&compareOptions.CandidatePath, "candidate", "c", "", "path to a candidate record file or directory")
	CompareCmd.Flags().StringVarP(&compareOptions.OutputFolder, "output", "o", "", "directory where comparison results are written")
}
