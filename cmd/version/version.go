package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/crosscheck-dev/crosscheck/pkg/shared/config"
)

var (
	AppConfig   *config.Config
	CoreVersion = "unknown"
	BuildTime   = "unknown"
)

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Core Version: v%s\n", CoreVersion)
			fmt.Printf("Go Version: %s\n", runtime.Version())
			fmt.Printf("Build Time: %s\n", BuildTime)
		},
	}
}
