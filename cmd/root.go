package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	comparecmd "github.com/crosscheck-dev/crosscheck/cmd/compare"
	extractcmd "github.com/crosscheck-dev/crosscheck/cmd/extract"
	"github.com/crosscheck-dev/crosscheck/cmd/version"
	"github.com/crosscheck-dev/crosscheck/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "crosscheck [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Crosscheck evaluates static-analyzer runs against a ground truth.",
		Long: `Crosscheck normalizes raw static-analyzer diagnostic reports into canonical
	per-project records and compares a candidate run against a ground-truth run,
	computing TP/FP/FN counts and precision/recall metrics per project and per checker.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(extractcmd.ExtractCmd)
	rootCmd.AddCommand(comparecmd.CompareCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	extractcmd.Init(AppConfig)
	comparecmd.Init(AppConfig)
	version.Init(AppConfig)
}
