package observe

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// Status is the coarse alert state for one pair.
type Status int

const (
	StatusOK Status = iota
	StatusGrow
	StatusFall
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusGrow:
		return "grow"
	case StatusFall:
		return "fall"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Policy selects how deviations across multiple targets collapse into a
// single value.
type Policy int

const (
	// AggregateMin takes the minimum of all deviations: the engine never
	// signals grow while any single target is still unfavorable.
	AggregateMin Policy = iota
	// AggregateMean takes the arithmetic mean.
	AggregateMean
)

// ParsePolicy parses the configuration form of a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "min":
		return AggregateMin, nil
	case "mean":
		return AggregateMean, nil
	default:
		return 0, fmt.Errorf("invalid aggregation policy %q: want min or mean", s)
	}
}

func (p Policy) String() string {
	switch p {
	case AggregateMin:
		return "min"
	case AggregateMean:
		return "mean"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// TargetSignal is the per-target rendering hint. Flagged uses its own
// threshold test (|rounded deviation| > step), independent of the aggregate
// status, since the caller renders both.
type TargetSignal struct {
	Label     string
	Deviation decimal.Decimal // unrounded
	Flagged   bool
}

// State is the aggregate observation over all targets of one pair.
// Computed once per poll cycle and discarded after rendering.
type State struct {
	Value     decimal.NullDecimal // rounded to 3 dp; invalid when no targets
	Status    Status
	Highlight bool
	Targets   []TargetSignal
}

// statusScale is the rounding applied before every threshold comparison.
// Part of the contract: comparisons must be deterministic across platforms.
const statusScale = 3

var (
	noiseFloor   = decimal.New(1, -2)    // 0.01% — below this the pair is flat
	highDiscount = decimal.New(995, -3)  // high * 0.995 vs last trade
	lowInflation = decimal.New(1005, -3) // low * 1.005 vs last trade
)

// Observe derives the observation state for one pair. With no targets the
// result is ok with no value: no alert is possible. Step is the sensitivity
// threshold in percent above which a deviation escalates to grow/fall.
//
// Returns ErrInvalidSide for a malformed target; that is a configuration
// error, not a market condition.
func Observe(targets []model.ObserveTarget, ticker model.Ticker, step decimal.Decimal, policy Policy) (State, error) {
	if len(targets) == 0 {
		return State{Status: StatusOK}, nil
	}

	signals := make([]TargetSignal, 0, len(targets))
	var agg decimal.Decimal
	for i, target := range targets {
		dev, err := Deviation(target, ticker)
		if err != nil {
			return State{}, fmt.Errorf("target %q: %w", target.Label, err)
		}

		signals = append(signals, TargetSignal{
			Label:     target.Label,
			Deviation: dev,
			Flagged:   dev.Round(statusScale).Abs().GreaterThan(step),
		})

		switch policy {
		case AggregateMean:
			agg = agg.Add(dev)
		default: // AggregateMin
			if i == 0 || dev.LessThan(agg) {
				agg = dev
			}
		}
	}
	if policy == AggregateMean {
		agg = agg.Div(decimal.NewFromInt(int64(len(targets))))
	}

	value := agg.Round(statusScale)
	state := State{
		Value:   decimal.NullDecimal{Decimal: value, Valid: true},
		Status:  StatusOK,
		Targets: signals,
	}

	switch {
	case value.GreaterThan(noiseFloor):
		state.Highlight = ticker.High.Mul(highDiscount).LessThan(ticker.LastTrade)
		if value.GreaterThan(step) {
			state.Status = StatusGrow
		}
	case value.LessThan(noiseFloor.Neg()):
		state.Highlight = ticker.Low.Mul(lowInflation).GreaterThan(ticker.LastTrade)
		if value.LessThan(step.Neg()) {
			state.Status = StatusFall
		}
	}

	return state, nil
}
