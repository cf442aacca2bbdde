package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ioyy900205/quantL/journal"
)

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Re-render a stored run from the SQLite journal",
	Long: `Report reads a past run from the SQLite journal and prints its
performance summary. Without a run ID the most recent run is shown; with
--list, recent runs are tabulated instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var (
	reportList  bool
	reportFills bool
)

func init() {
	reportCmd.Flags().BoolVarP(&reportList, "list", "l", false, "list recent runs instead of rendering one")
	reportCmd.Flags().BoolVar(&reportFills, "fills", false, "include the fill log")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal.Type != "sqlite" {
		return fmt.Errorf("report requires a sqlite journal, configured type is %q", cfg.Journal.Type)
	}

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	if reportList {
		runs, err := j.ListRuns(20)
		if err != nil {
			return err
		}
		fmt.Printf("%-28s %-16s %-12s %10s %8s\n", "RUN", "STRATEGY", "SYMBOLS", "RETURN", "TRADES")
		for _, r := range runs {
			fmt.Printf("%-28s %-16s %-12s %9.2f%% %8d\n",
				r.RunID, r.Strategy, r.Symbols, r.TotalReturn*100, r.Trades)
		}
		return nil
	}

	var run journal.RunRecord
	if len(args) == 1 {
		run, err = j.GetRun(args[0])
	} else {
		run, err = j.LatestRun()
	}
	if err != nil {
		return err
	}

	text, err := run.RenderText()
	if err != nil {
		return err
	}
	fmt.Print(text)

	if reportFills {
		fills, err := j.ListFills(run.RunID)
		if err != nil {
			return err
		}
		fmt.Printf("\nFILLS\n")
		for _, f := range fills {
			fmt.Printf("  %s %-4s %-8s %10.0f @ %.4f  %s\n",
				f.Time.Format("2006-01-02"), f.Side, f.Symbol, f.Quantity, f.Price, f.Reason)
		}
	}
	return nil
}
