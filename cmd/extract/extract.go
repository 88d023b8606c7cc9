package extract

import (
	"fmt"

	"github.com/spf13/cobra"

	extractor "github.com/crosscheck-dev/crosscheck/internal/extract"
	"github.com/crosscheck-dev/crosscheck/pkg/shared/config"
	"github.com/crosscheck-dev/crosscheck/pkg/shared/logger"
)

// RunOptionsExtract holds the arguments for the extract command.
type RunOptionsExtract struct {
	ReportsPath  string
	OutputFolder string
	ProjectName  string
	ProjectRoot  string
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	extractOptions      RunOptionsExtract
	exampleExtractUsage = `  # Extracting a directory of analyzer reports into an intermediate record
  crosscheck extract --reports /path/to/reports --output /path/to/findings

  # Extracting a single report file with an explicit project name
  crosscheck extract --reports /path/to/report.plist --project openssl

  # Relativizing diagnostic file paths against the project tree
  crosscheck extract --reports /path/to/reports --project-root /path/to/openssl`
)

// ExtractCmd represents the extract command.
var ExtractCmd = &cobra.Command{
	Use:                   "extract --reports/-r PATH [--output/-o PATH] [--project NAME] [--project-root PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleExtractUsage,
	Short:                 "Normalizes raw analyzer diagnostic reports into a per-project intermediate record",
	RunE:                  runExtractCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runExtractCommand executes the extract command.
func runExtractCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-extract")

	if err := validateExtractArgs(&extractOptions, args); err != nil {
		logger.Error("invalid extract arguments", "error", err)
		return err
	}
	extractOptions.OutputFolder = config.SetThen(extractOptions.OutputFolder, AppConfig.Extract.OutputFolder)

	e := extractor.New(logger)
	outPath, err := e.Run(extractor.Options{
		ReportsPath:  extractOptions.ReportsPath,
		OutputFolder: extractOptions.OutputFolder,
		ProjectName:  extractOptions.ProjectName,
		ProjectRoot:  extractOptions.ProjectRoot,
	})
	if err != nil {
		logger.Error("extraction failed", "reports", extractOptions.ReportsPath, "error", err)
		return err
	}

	fmt.Println(outPath)
	return nil
}

func init() {
	ExtractCmd.Flags().StringVarP(&extractOptions.ReportsPath, "reports", "r", "", "path to a report file or a directory of report files")
	ExtractCmd.Flags().StringVarP(&extractOptions.OutputFolder, "output", "o", "", "directory where the intermediate record is written")
	ExtractCmd.Flags().StringVar(&extractOptions.ProjectName, "project", "", "project name to use in the intermediate record")
	ExtractCmd.Flags().StringVar(&extractOptions.ProjectRoot, "project-root", "", "project root directory to make file paths relative to")
}
