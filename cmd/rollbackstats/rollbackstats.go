// Package rollbackstats implements the "rollback-stats" subcommand: run a
// generation repeatedly across a seed range and summarize outcome and
// rollback-count distribution.
package rollbackstats

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eng618/wfc-loom/pkg/advisor"
	"github.com/eng618/wfc-loom/pkg/catalogio"
	"github.com/eng618/wfc-loom/pkg/cliutil"
	"github.com/eng618/wfc-loom/pkg/judge"
	"github.com/eng618/wfc-loom/pkg/session"
	"github.com/eng618/wfc-loom/pkg/wfc"
	"github.com/eng618/wfc-loom/pkg/wfclog"
)

var (
	catalogPath string
	width       int
	height      int
	runs        int
	baseSeed    int64
	advisorID   string
	judgeID     string
	penalty     int
	sessionDSN  string
)

// rollbackStatsCmd represents the rollback-stats command.
var rollbackStatsCmd = &cobra.Command{
	Use:   "rollback-stats",
	Short: "Summarize outcome and rollback counts across repeated runs",
	Long: `Run a generation once per seed in [base-seed, base-seed+runs) and report
how many runs collapsed versus each failure outcome, plus the
min/mean/max rollback count across runs that collapsed.

Pass --session-dsn to also persist every run to Postgres via pkg/session.

Examples:
  wfc-loom rollback-stats --catalog patterns.json --runs 100
  wfc-loom rollback-stats -c patterns.json --judge random --penalty 1 --runs 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		repo, _, err := catalogio.LoadFile(catalogPath)
		if err != nil {
			return fmt.Errorf("rollback-stats: load catalog: %w", err)
		}

		var store *session.Store
		if sessionDSN != "" {
			cfg := session.DefaultConfig()
			cfg.DSN = sessionDSN
			store, err = session.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("rollback-stats: %w", err)
			}
			defer store.Close()
			if err := store.CreateTable(ctx); err != nil {
				return fmt.Errorf("rollback-stats: %w", err)
			}
		}

		outcomes := make(map[wfc.Outcome]int)
		var rollbackCounts []int

		spin := cliutil.NewSpinner(fmt.Sprintf("running %d generations...", runs))
		spin.Start()

		for i := 0; i < runs; i++ {
			seed := baseSeed + int64(i)

			adv, err := advisor.Get(advisorID, seed)
			if err != nil {
				spin.Stop()
				return fmt.Errorf("rollback-stats: %w", err)
			}
			jdg, err := judge.Get(judgeID, seed, penalty)
			if err != nil {
				spin.Stop()
				return fmt.Errorf("rollback-stats: %w", err)
			}

			eng := wfc.NewEngine(wfc.EngineConfig{
				Height:  height,
				Width:   width,
				Palette: repo.AllPatterns(),
				Judge:   jdg,
				Advisor: adv,
			})

			collapsed, genErr := eng.GenerateErr(ctx)

			runOutcome := wfc.OutcomeCollapsed
			var oerr *wfc.OutcomeError
			if !collapsed {
				if errors.As(genErr, &oerr) {
					runOutcome = oerr.Outcome
				} else {
					runOutcome = wfc.OutcomeNone
				}
			}

			if store != nil {
				if _, err := store.RecordRun(ctx, eng, seed, judgeID, advisorID, collapsed, string(runOutcome)); err != nil {
					spin.Stop()
					return fmt.Errorf("rollback-stats: %w", err)
				}
			}

			if collapsed {
				outcomes[wfc.OutcomeCollapsed]++
				rollbackCounts = append(rollbackCounts, eng.RollbackCount)
				continue
			}
			outcomes[runOutcome]++
		}

		spin.Stop()

		wfclog.Info("Ran %d generations (%dx%d, advisor=%s, judge=%s):", runs, width, height, advisorID, judgeID)
		for outcome, count := range outcomes {
			wfclog.Info("  %-26s %d", outcomeLabel(outcome), count)
		}

		if len(rollbackCounts) > 0 {
			min, max, sum := rollbackCounts[0], rollbackCounts[0], 0
			for _, c := range rollbackCounts {
				if c < min {
					min = c
				}
				if c > max {
					max = c
				}
				sum += c
			}
			mean := float64(sum) / float64(len(rollbackCounts))
			wfclog.Info("Rollback count over collapsed runs: min=%d mean=%.2f max=%d", min, mean, max)
		}

		return nil
	},
}

func outcomeLabel(o wfc.Outcome) string {
	if o == wfc.OutcomeNone {
		return "UNKNOWN"
	}
	return string(o)
}

func init() {
	rollbackStatsCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to a pattern catalog JSON file (required)")
	rollbackStatsCmd.Flags().IntVarP(&width, "width", "w", 20, "grid width")
	rollbackStatsCmd.Flags().IntVarP(&height, "height", "H", 20, "grid height")
	rollbackStatsCmd.Flags().IntVar(&runs, "runs", 20, "number of generations to run")
	rollbackStatsCmd.Flags().Int64Var(&baseSeed, "base-seed", 0, "seed for run 0; each subsequent run increments by 1")
	rollbackStatsCmd.Flags().StringVar(&advisorID, "advisor", "random", "advisor id")
	rollbackStatsCmd.Flags().StringVar(&judgeID, "judge", "always-continue", "judge id")
	rollbackStatsCmd.Flags().IntVar(&penalty, "penalty", 0, "rollback penalty passed to the judge")
	rollbackStatsCmd.Flags().StringVar(&sessionDSN, "session-dsn", "", "optional Postgres DSN; when set, persists each run via pkg/session instead of only summarizing in-memory")
	_ = rollbackStatsCmd.MarkFlagRequired("catalog")
}

// GetCommand returns the rollback-stats command for registration with root.
func GetCommand() *cobra.Command {
	return rollbackStatsCmd
}
