package backtest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ioyy900205/quantL/exec"
	"github.com/ioyy900205/quantL/indicators"
	"github.com/ioyy900205/quantL/market"
	"github.com/ioyy900205/quantL/portfolio"
	"github.com/ioyy900205/quantL/strategy"
)

// State is the driver lifecycle. A driver runs exactly once.
type State int32

const (
	StateInitialized State = iota
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "INITIALIZED"
	case StateRunning:
		return "RUNNING"
	case StateCompleted:
		return "COMPLETED"
	case StateAborted:
		return "ABORTED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Option adjusts driver construction.
type Option func(*Driver)

// WithLogger sets the run logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithSignals attaches pre-computed signal tables, keyed by symbol. Each
// table must be aligned with that symbol's series.
func WithSignals(tables map[string]*indicators.Table) Option {
	return func(d *Driver) { d.signals = tables }
}

// Driver owns one run: it walks the union timestamp axis in order and, per
// step, scans stop-losses, collects strategy intents, executes them through
// the simulator and ledger, and commits a snapshot. All iteration is over
// sorted symbols, so two runs over identical inputs produce identical fill
// and snapshot sequences.
type Driver struct {
	cfg     Config
	data    *market.MultiSeries
	strat   strategy.Strategy
	signals map[string]*indicators.Table
	log     *slog.Logger

	sim    *exec.Simulator
	ledger *portfolio.Ledger
	limits portfolio.Limits

	state     State
	fills     []*exec.Fill
	snapshots []portfolio.Snapshot
	events    []Event
}

// NewDriver validates the configuration and assembles a run. The strategy
// must already be initialized.
func NewDriver(cfg Config, data *market.MultiSeries, strat strategy.Strategy, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &ConfigError{Field: "data", Reason: "bar data is required"}
	}
	if strat == nil {
		return nil, &ConfigError{Field: "strategy", Reason: "a strategy is required"}
	}

	d := &Driver{
		cfg:    cfg,
		data:   data,
		strat:  strat,
		log:    slog.Default(),
		sim:    exec.NewSimulator(exec.NewCostModel(cfg.CommissionRate, cfg.SlippageRate), cfg.AllowShort),
		ledger: portfolio.NewLedger(decimal.NewFromFloat(cfg.InitialCapital)),
		limits: portfolio.NewLimits(cfg.MaxPositionFraction, cfg.StopLossFraction),
	}
	for _, opt := range opts {
		opt(d)
	}

	for sym, tbl := range d.signals {
		s, ok := data.Series(sym)
		if !ok {
			return nil, &ConfigError{Field: "signals", Reason: fmt.Sprintf("table for unknown symbol %q", sym)}
		}
		if tbl.Len() != s.Len() {
			return nil, &ConfigError{Field: "signals", Reason: fmt.Sprintf("table for %q has %d rows, series has %d", sym, tbl.Len(), s.Len())}
		}
	}

	return d, nil
}

func (d *Driver) State() State { return d.state }

// Run replays the configured date range. It returns the accumulated result
// even on abort, so callers always see the last committed snapshot.
// Cancellation is honored only between steps; a step never half-applies.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	if d.state != StateInitialized {
		return nil, fmt.Errorf("backtest: driver already ran (state %s)", d.state)
	}
	d.state = StateRunning

	axis := d.data.AxisBetween(d.cfg.Start, d.cfg.End)
	if len(axis) == 0 {
		d.state = StateAborted
		return d.result(axis), &ConfigError{Field: "start", Reason: "no bars inside the configured date range"}
	}

	symbols := d.data.Symbols()
	cursors := make(map[string]*market.Cursor, len(symbols))
	for _, sym := range symbols {
		c, _ := d.data.Cursor(sym)
		cursors[sym] = c
	}

	lastCloses := make(map[string]decimal.Decimal, len(symbols))

	for _, ts := range axis {
		if err := ctx.Err(); err != nil {
			d.state = StateAborted
			d.log.Warn("run canceled", "time", ts, "steps", len(d.snapshots))
			return d.result(axis), fmt.Errorf("backtest: canceled at %s: %w", ts.Format(time.RFC3339), err)
		}

		// Advance every cursor first so stop-loss checks and sizing see
		// this step's closes.
		present := make(map[string]market.Bar, len(symbols))
		for _, sym := range symbols {
			bar, ok := cursors[sym].Advance(ts)
			if !ok {
				continue
			}
			present[sym] = bar
			lastCloses[sym] = decimal.NewFromFloat(bar.Close)
		}

		d.scanStopLosses(ts, present, lastCloses)

		if err := d.step(ts, cursors, present, lastCloses); err != nil {
			d.state = StateAborted
			return d.result(axis), err
		}

		d.snapshots = append(d.snapshots, d.ledger.Snapshot(ts, lastCloses))
	}

	if err := d.strat.Finalize(); err != nil {
		d.log.Warn("strategy finalize failed", "strategy", d.strat.Name(), "error", err)
	}

	d.state = StateCompleted
	res := d.result(axis)
	d.log.Info("run completed",
		"strategy", d.strat.Name(),
		"steps", res.Steps,
		"fills", len(res.Fills),
		"final_equity", res.FinalEquity.StringFixed(2))
	return res, nil
}

// scanStopLosses force-liquidates positions whose unrealized loss breaches
// the configured fraction. It runs before strategy intents so an exit takes
// priority over a new entry on the same bar.
func (d *Driver) scanStopLosses(ts time.Time, present map[string]market.Bar, lastCloses map[string]decimal.Decimal) {
	curCloses := make(map[string]decimal.Decimal, len(present))
	for sym := range present {
		curCloses[sym] = lastCloses[sym]
	}

	for _, sym := range d.ledger.Symbols() {
		if _, ok := present[sym]; !ok {
			d.event(Event{Time: ts, Symbol: sym, Kind: EventMissingData, Detail: "no bar; stop-loss not evaluated"})
		}
	}

	for _, sym := range d.limits.StopLosses(d.ledger, curCloses) {
		bar := present[sym]
		held := d.ledger.Quantity(sym)

		// Liquidate to flat: longs sell, shorts buy back.
		side := strategy.Sell
		if held.IsNegative() {
			side = strategy.Buy
		}
		intent := strategy.Intent{Symbol: sym, Time: ts, Side: side}

		equity := d.ledger.Equity(lastCloses)
		delta := d.sim.Size(intent, bar, equity, held)
		fill := d.sim.Fill(intent, bar, delta, exec.ReasonStopLoss)
		if fill == nil {
			continue
		}
		if err := d.ledger.Apply(fill); err != nil {
			d.event(Event{Time: ts, Symbol: sym, Kind: EventIntentRejected, Detail: err.Error()})
			continue
		}
		d.fills = append(d.fills, fill)
		d.event(Event{Time: ts, Symbol: sym, Kind: EventStopLoss,
			Detail: fmt.Sprintf("liquidated %s shares at %s", fill.Quantity, fill.Price.StringFixed(4))})
	}
}

// step collects and executes the strategy's intents for one timestamp.
// Recoverable rejections become events; a strategy error aborts the run.
func (d *Driver) step(ts time.Time, cursors map[string]*market.Cursor, present map[string]market.Bar, lastCloses map[string]decimal.Decimal) error {
	for _, sym := range d.data.Symbols() {
		if _, ok := present[sym]; !ok {
			continue
		}

		w := strategy.Window{Symbol: sym, Bars: cursors[sym].Window()}
		if tbl, ok := d.signals[sym]; ok {
			w.Signals = tbl.Slice(len(w.Bars))
		}

		intents, err := d.strat.OnBar(w)
		if err != nil {
			return fmt.Errorf("backtest: strategy %s at %s for %s: %w",
				d.strat.Name(), ts.Format(time.RFC3339), sym, err)
		}

		for _, intent := range intents {
			d.execute(ts, intent, present, lastCloses)
		}
	}
	return nil
}

// execute sizes, risk-checks, fills, and applies one intent.
func (d *Driver) execute(ts time.Time, intent strategy.Intent, present map[string]market.Bar, lastCloses map[string]decimal.Decimal) {
	if intent.Side == strategy.Hold {
		return
	}

	bar, ok := present[intent.Symbol]
	if !ok {
		d.event(Event{Time: ts, Symbol: intent.Symbol, Kind: EventMissingData, Detail: "intent for symbol with no bar"})
		return
	}

	equity := d.ledger.Equity(lastCloses)
	held := d.ledger.Quantity(intent.Symbol)
	delta := d.sim.Size(intent, bar, equity, held)
	if delta.IsZero() {
		d.event(Event{Time: ts, Symbol: intent.Symbol, Kind: EventIntentSkipped,
			Detail: fmt.Sprintf("%s intent sized to zero shares", intent.Side)})
		return
	}

	close := lastCloses[intent.Symbol]
	if err := d.limits.CheckPosition(d.ledger, intent.Symbol, ts, delta, close, equity); err != nil {
		d.event(Event{Time: ts, Symbol: intent.Symbol, Kind: EventIntentRejected, Detail: err.Error()})
		return
	}

	fill := d.sim.Fill(intent, bar, delta, exec.ReasonSignal)
	if fill == nil {
		d.event(Event{Time: ts, Symbol: intent.Symbol, Kind: EventIntentSkipped, Detail: "sized below one share"})
		return
	}
	if err := d.ledger.Apply(fill); err != nil {
		d.event(Event{Time: ts, Symbol: intent.Symbol, Kind: EventIntentRejected, Detail: err.Error()})
		return
	}
	d.fills = append(d.fills, fill)
}

func (d *Driver) event(ev Event) {
	d.events = append(d.events, ev)
	d.log.Debug("run event", "kind", string(ev.Kind), "symbol", ev.Symbol, "time", ev.Time, "detail", ev.Detail)
}
