// Package validate implements the "validate" subcommand: load a pattern
// catalog and report its bidirectional rule consistency.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eng618/wfc-loom/pkg/catalogio"
	"github.com/eng618/wfc-loom/pkg/wfclog"
)

var catalogPath string

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"val", "v"},
	Short:   "Validate a pattern catalog's rule consistency",
	Long: `Validate a pattern catalog for bidirectional rule consistency.

For every pattern A with a direction-d rule allowing neighbor B, the
validator checks that B's opposite(d) rule allows A back. Any asymmetry
is reported with the pattern, neighbor, and direction involved.

Examples:
  wfc-loom validate --catalog patterns.json
  wfc-loom val -c patterns.json -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wfclog.Info("Loading catalog: %s", catalogPath)
		repo, report, err := catalogio.LoadFile(catalogPath)
		if err != nil {
			return fmt.Errorf("validate: %w", err)
		}

		wfclog.Info("Loaded %d patterns", len(repo.AllPatterns()))
		if report.OK() {
			wfclog.Info("Catalog is bidirectionally consistent")
			return nil
		}

		wfclog.Warning("Found %d rule asymmetries:", len(report.Asymmetries))
		for _, a := range report.Asymmetries {
			wfclog.Info("  %s", a.String())
		}
		return fmt.Errorf("validate: %d asymmetries found", len(report.Asymmetries))
	},
}

func init() {
	validateCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to a pattern catalog JSON file (required)")
	_ = validateCmd.MarkFlagRequired("catalog")
}

// GetCommand returns the validate command for registration with root.
func GetCommand() *cobra.Command {
	return validateCmd
}
