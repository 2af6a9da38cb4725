// Package generate implements the "generate" subcommand: load a pattern
// catalog, run a collapse to completion, and serialize the result.
package generate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eng618/wfc-loom/pkg/advisor"
	"github.com/eng618/wfc-loom/pkg/catalogio"
	"github.com/eng618/wfc-loom/pkg/cliutil"
	"github.com/eng618/wfc-loom/pkg/judge"
	"github.com/eng618/wfc-loom/pkg/serialize"
	"github.com/eng618/wfc-loom/pkg/wfc"
	"github.com/eng618/wfc-loom/pkg/wfclog"
)

var (
	catalogPath  string
	width        int
	height       int
	seed         int64
	advisorID    string
	judgeID      string
	penalty      int
	maxRollbacks int
	outDir       string
	outName      string
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate a collapsed grid from a pattern catalog",
	Long: `Generate a fully collapsed grid by running wave function collapse over
a pattern catalog.

Loads a JSON pattern catalog, builds a grid of the requested size, and
drives the collapse loop with the chosen Advisor and Judge until the grid
is fully collapsed or generation fails. The resulting grid is written to
<out-dir>/<out-name>.dat in the format described for serialize.Serialize.

Examples:
  wfc-loom generate --catalog patterns.json --width 20 --height 20
  wfc-loom gen -c patterns.json -w 40 -H 40 --seed 7 --advisor greedy
  wfc-loom g -c patterns.json --judge random --max-rollbacks 50 -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wfclog.Info("Loading catalog: %s", catalogPath)
		repo, report, err := catalogio.LoadFile(catalogPath)
		if err != nil {
			return fmt.Errorf("generate: load catalog: %w", err)
		}
		if !report.OK() {
			wfclog.Warning("Catalog has %d rule asymmetries; proceeding anyway", len(report.Asymmetries))
			for _, a := range report.Asymmetries {
				wfclog.Verbose("  %s", a.String())
			}
		}

		adv, err := advisor.Get(advisorID, seed)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		jdg, err := judge.Get(judgeID, seed, penalty)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		var maxPtr *int
		if maxRollbacks >= 0 {
			maxPtr = &maxRollbacks
		}

		eng := wfc.NewEngine(wfc.EngineConfig{
			Height:       height,
			Width:        width,
			Palette:      repo.AllPatterns(),
			Judge:        jdg,
			Advisor:      adv,
			MaxRollbacks: maxPtr,
		})

		spin := cliutil.NewSpinner(fmt.Sprintf("collapsing %dx%d grid...", width, height))
		spin.Start()
		collapsed, genErr := eng.GenerateErr(cmd.Context())
		spin.Stop()

		if genErr != nil {
			return fmt.Errorf("generate: %w", genErr)
		}
		if !collapsed {
			return fmt.Errorf("generate: did not collapse")
		}

		path, err := serialize.Serialize(eng.Grid, outDir, outName)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		wfclog.Info("Collapsed in %d steps (%d rollbacks); wrote %s", eng.History.Steps(), eng.RollbackCount, path)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to a pattern catalog JSON file (required)")
	generateCmd.Flags().IntVarP(&width, "width", "w", 20, "grid width")
	generateCmd.Flags().IntVarP(&height, "height", "H", 20, "grid height")
	generateCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "rng seed for the advisor and judge")
	generateCmd.Flags().StringVar(&advisorID, "advisor", "random", "advisor id (registered ids: random, greedy)")
	generateCmd.Flags().StringVar(&judgeID, "judge", "always-continue", "judge id")
	generateCmd.Flags().IntVar(&penalty, "penalty", 0, "rollback penalty passed to the judge (0 disables the tabu)")
	generateCmd.Flags().IntVar(&maxRollbacks, "max-rollbacks", -1, "rollback budget; -1 uses the default floor(sqrt(w*h))")
	generateCmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory to write the serialized grid into")
	generateCmd.Flags().StringVar(&outName, "out-name", "grid", "base filename (without extension) for the serialized grid")
	_ = generateCmd.MarkFlagRequired("catalog")
}

// GetCommand returns the generate command for registration with root.
func GetCommand() *cobra.Command {
	return generateCmd
}
