package observe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// TickerSource supplies a full market snapshot keyed by pair symbol.
// The real implementation is the EXMO public ticker endpoint.
type TickerSource interface {
	Ticker(ctx context.Context) (map[string]model.Ticker, error)
}

// WatchEntry binds a currency pair to its observe targets.
type WatchEntry struct {
	Pair    model.CurrencyPair
	Targets []model.ObserveTarget
}

// Outcome classifies a per-pair report.
type Outcome int

const (
	OutcomeEvaluated Outcome = iota
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEvaluated:
		return "evaluated"
	case OutcomeNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Report is the evaluation result for one watched pair.
type Report struct {
	Pair    model.CurrencyPair
	Outcome Outcome
	State   State
	Ticker  *model.Ticker // nil when the pair was absent from the snapshot
}

// Batch is the result of one poll cycle. ConnectionLost covers the whole
// poll: the feed was unreachable or returned malformed data. Individual
// missing pairs do not set it.
type Batch struct {
	PolledAt       time.Time
	ConnectionLost bool
	Err            error // underlying feed error when ConnectionLost
	Reports        []Report
}

// Evaluator runs the observation engine over a configured watch list.
type Evaluator struct {
	source TickerSource
	watch  []WatchEntry
	step   decimal.Decimal
	policy Policy
	logger *slog.Logger
}

// NewEvaluator creates an Evaluator. A nil logger falls back to slog.Default.
func NewEvaluator(source TickerSource, watch []WatchEntry, step decimal.Decimal, policy Policy, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		source: source,
		watch:  watch,
		step:   step,
		policy: policy,
		logger: logger,
	}
}

// Evaluate performs one poll cycle: fetch the snapshot, then evaluate every
// watched pair against it. A feed failure yields a connection-lost batch,
// never an error; a pair missing from the snapshot yields a not-found report
// without aborting its siblings. The returned error is reserved for
// configuration mistakes (ErrInvalidSide) and aborts only this cycle.
func (e *Evaluator) Evaluate(ctx context.Context) (Batch, error) {
	batch := Batch{PolledAt: time.Now()}

	snapshot, err := e.source.Ticker(ctx)
	if err != nil {
		e.logger.Warn("ticker feed unavailable", "err", err)
		batch.ConnectionLost = true
		batch.Err = err
		return batch, nil
	}

	batch.Reports = make([]Report, 0, len(e.watch))
	for _, entry := range e.watch {
		ticker, ok := snapshot[entry.Pair.Symbol()]
		if !ok {
			e.logger.Debug("pair not in snapshot", "pair", entry.Pair)
			batch.Reports = append(batch.Reports, Report{
				Pair:    entry.Pair,
				Outcome: OutcomeNotFound,
			})
			continue
		}

		state, err := Observe(entry.Targets, ticker, e.step, e.policy)
		if err != nil {
			return Batch{}, fmt.Errorf("observe %s: %w", entry.Pair, err)
		}

		batch.Reports = append(batch.Reports, Report{
			Pair:    entry.Pair,
			Outcome: OutcomeEvaluated,
			State:   state,
			Ticker:  &ticker,
		})
	}

	return batch, nil
}
