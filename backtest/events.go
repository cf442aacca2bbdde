package backtest

import "time"

// EventKind classifies a recoverable condition recorded during a run.
type EventKind string

const (
	// EventMissingData marks a symbol skipped for one step because it has
	// no bar at that timestamp.
	EventMissingData EventKind = "missing_data"

	// EventIntentSkipped marks an intent whose sized quantity came out at
	// zero shares, so no order was placed.
	EventIntentSkipped EventKind = "intent_skipped"

	// EventIntentRejected marks an intent refused by a risk limit or by an
	// insufficient cash balance.
	EventIntentRejected EventKind = "intent_rejected"

	// EventStopLoss marks a forced liquidation.
	EventStopLoss EventKind = "stop_loss"
)

// Event is one recoverable condition. Events never abort a run; they exist
// for post-hoc inspection of why a trade did or did not happen.
type Event struct {
	Time   time.Time
	Symbol string
	Kind   EventKind
	Detail string
}
