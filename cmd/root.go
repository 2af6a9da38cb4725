package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/eng618/wfc-loom/cmd/generate"
	"github.com/eng618/wfc-loom/cmd/render"
	"github.com/eng618/wfc-loom/cmd/rollbackstats"
	"github.com/eng618/wfc-loom/cmd/validate"
	"github.com/eng618/wfc-loom/pkg/wfclog"
)

var (
	// Global flags
	verbose bool
	logFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wfc-loom",
	Short: "Tile-based wave function collapse generator",
	Long: `wfc-loom drives a constraint-propagation grid generator: load a
pattern catalog, collapse a grid cell by cell under adjacency rules, and
arbitrate contradictions with a pluggable Judge and Advisor.

It provides commands for:
  - Generating a collapsed grid from a pattern catalog
  - Validating a pattern catalog's bidirectional rule consistency
  - Rendering a serialized grid to the terminal
  - Reporting rollback statistics across repeated runs`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		wfclog.VerboseEnabled = verbose
		if logFile != "" {
			wfclog.Verbose("Logging to file: %s", logFile)
			if err := wfclog.SetLogFile(logFile); err != nil {
				return err
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called by main.main() exactly once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output for debugging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "additionally write logs to this file")

	rootCmd.AddCommand(generate.GetCommand())
	rootCmd.AddCommand(validate.GetCommand())
	rootCmd.AddCommand(render.GetCommand())
	rootCmd.AddCommand(rollbackstats.GetCommand())
}
