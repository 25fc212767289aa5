package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/evgenii/bitbar-trademan/internal/model"
	"github.com/evgenii/bitbar-trademan/internal/observe"
)

// StepValue returns the parsed sensitivity threshold.
func (c *Config) StepValue() (decimal.Decimal, error) {
	return decimal.NewFromString(c.Observe.Step)
}

// MinQuantityValue returns the parsed exchange minimum order size.
func (c *Config) MinQuantityValue() (decimal.Decimal, error) {
	return decimal.NewFromString(c.Trade.MinQuantity)
}

// AggregationPolicy returns the configured aggregation policy.
func (c *Config) AggregationPolicy() (observe.Policy, error) {
	return observe.ParsePolicy(c.Observe.Aggregation)
}

// Watchlist converts the configured watch entries into domain form.
func (c *Config) Watchlist() ([]observe.WatchEntry, error) {
	entries := make([]observe.WatchEntry, 0, len(c.Watch))
	for _, w := range c.Watch {
		pair, err := model.ParsePair(w.Pair)
		if err != nil {
			return nil, err
		}

		targets := make([]model.ObserveTarget, 0, len(w.Targets))
		for _, t := range w.Targets {
			side, err := model.ParseSide(t.Side)
			if err != nil {
				return nil, fmt.Errorf("watch %s: %w", w.Pair, err)
			}
			price, err := decimal.NewFromString(t.Price)
			if err != nil {
				return nil, fmt.Errorf("watch %s: price %q is not a decimal", w.Pair, t.Price)
			}
			label := t.Label
			if label == "" {
				label = side.String() + "@" + price.String()
			}
			targets = append(targets, model.ObserveTarget{
				Label: label,
				Side:  side,
				Price: price,
			})
		}

		entries = append(entries, observe.WatchEntry{Pair: pair, Targets: targets})
	}
	return entries, nil
}
