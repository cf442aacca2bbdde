package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ioyy900205/quantL/analytics"
	"github.com/ioyy900205/quantL/backtest"
	"github.com/ioyy900205/quantL/config"
	"github.com/ioyy900205/quantL/data"
	"github.com/ioyy900205/quantL/indicators"
	"github.com/ioyy900205/quantL/internal/id"
	"github.com/ioyy900205/quantL/journal"
	"github.com/ioyy900205/quantL/market"
	"github.com/ioyy900205/quantL/strategy"
	"github.com/ioyy900205/quantL/strategy/builtins"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a strategy over the configured dataset",
	Long: `Backtest replays the configured date range bar by bar, feeds each bar to
the selected strategy, simulates fills with commission and slippage, and
prints a performance report. Results are persisted to the configured
journal so they can be re-rendered later with "quantl report".

Example:
  quantl backtest --strategy dual-ma`,
	RunE: runBacktest,
}

var btStrategy string

func init() {
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "", "override the configured strategy name")
	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if btStrategy != "" {
		cfg.Strategy.Name = btStrategy
	}
	log := newLogger(cfg)

	bars, err := data.NewLoader().LoadDir(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	registry := strategy.NewRegistry()
	builtins.RegisterAll(registry)
	strat, err := registry.New(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	tables, err := signalTables(cfg, bars)
	if err != nil {
		return fmt.Errorf("signals: %w", err)
	}

	driver, err := backtest.NewDriver(cfg.Run, bars, strat,
		backtest.WithLogger(log),
		backtest.WithSignals(tables))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	rep := analytics.Analyze(res.Snapshots, res.Fills, analytics.Options{
		PeriodsPerYear: cfg.Run.PeriodsPerYear,
	})

	runID := id.New()
	run, fills, snaps := journal.BuildRecords(runID, time.Now().UTC(),
		strings.Join(bars.Symbols(), ","), cfg.Run, res, rep)

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
		if err := journal.Record(j, run, fills, snaps); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		log.Info("run recorded", "run_id", runID, "journal", cfg.Journal.Type)
	}

	text, err := run.RenderText()
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

// signalTables pre-computes the indicator columns the builtin strategies
// read, so per-bar work stays a slice lookup. Unknown strategies run
// without signal tables and compute from raw bars.
func signalTables(cfg *config.Config, bars *market.MultiSeries) (map[string]*indicators.Table, error) {
	var specs []indicators.ColumnSpec
	switch cfg.Strategy.Name {
	case "dual-ma":
		short, ok := cfg.Strategy.Params.Int("short_window")
		if !ok {
			return nil, nil
		}
		long, ok := cfg.Strategy.Params.Int("long_window")
		if !ok {
			return nil, nil
		}
		specs = []indicators.ColumnSpec{
			{Name: "ma_short", Kind: indicators.KindSMA, Period: short},
			{Name: "ma_long", Kind: indicators.KindSMA, Period: long},
		}
	case "momentum":
		lookback, ok := cfg.Strategy.Params.Int("lookback")
		if !ok {
			return nil, nil
		}
		specs = []indicators.ColumnSpec{
			{Name: "roc", Kind: indicators.KindROC, Period: lookback},
		}
	default:
		return nil, nil
	}

	tables := make(map[string]*indicators.Table, len(bars.Symbols()))
	for _, symbol := range bars.Symbols() {
		s, _ := bars.Series(symbol)
		tbl, err := indicators.BuildTable(s, specs...)
		if err != nil {
			return nil, err
		}
		tables[symbol] = tbl
	}
	return tables, nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		return journal.NewCSV(cfg.Journal.FillsFile, cfg.Journal.EquityFile)
	default:
		return nil, nil
	}
}
