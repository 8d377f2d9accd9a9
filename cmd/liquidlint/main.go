package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liquidlint/liquidlint/pkg/cli"
	"github.com/liquidlint/liquidlint/pkg/console"
	"github.com/liquidlint/liquidlint/pkg/constants"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Schema linter for Liquid theme files",
	Long: ` = liquidlint

Checks the {% schema %} block embedded in Liquid theme sections and blocks:
tolerant JSON parsing with automatic repair of common mistakes, structural
validation of settings, blocks and presets, and diagnostics mapped back to
source lines.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Check .liquid files for schema problems",
	Long: `Check .liquid files for schema problems.

Paths may be files or directories; directories are scanned recursively.
Without arguments the current directory is checked.

Examples:
  ` + constants.CLIName + ` check
  ` + constants.CLIName + ` check sections/ blocks/
  ` + constants.CLIName + ` check sections/hero.liquid --fail-on warning
  ` + constants.CLIName + ` check --watch`,
	Run: func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")
		failOn, _ := cmd.Flags().GetString("fail-on")

		cfg, err := loadConfigWithOverrides(failOn)
		if err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
		opts := cli.CheckOptions{Verbose: verbose, Config: cfg}

		if watch {
			if err := cli.WatchFiles(args, opts); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				os.Exit(1)
			}
			return
		}
		if err := cli.CheckFiles(args, opts); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIName, version)))
	},
}

// loadConfigWithOverrides reads .liquidlint.yml from the working directory
// and applies flag overrides on top.
func loadConfigWithOverrides(failOn string) (*cli.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := cli.LoadConfig(wd)
	if err != nil {
		return nil, err
	}
	if failOn != "" {
		switch failOn {
		case cli.FailOnError, cli.FailOnWarning, cli.FailOnNever:
			cfg.FailOn = failOn
		default:
			return nil, fmt.Errorf("invalid --fail-on value %q. Must be 'error', 'warning', or 'never'", failOn)
		}
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output showing detailed information")

	checkCmd.Flags().BoolP("watch", "w", false, "Watch for changes to .liquid files and recheck automatically")
	checkCmd.Flags().String("fail-on", "", "Severity that makes the run fail: error, warning, or never")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
