package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}

	step, err := decimal.NewFromString(c.Observe.Step)
	if err != nil {
		return fmt.Errorf("observe.step %q is not a decimal", c.Observe.Step)
	}
	if !step.IsPositive() {
		return fmt.Errorf("observe.step must be positive, got %s", step)
	}

	if c.Observe.Aggregation != "min" && c.Observe.Aggregation != "mean" {
		return fmt.Errorf("observe.aggregation must be min or mean, got %q", c.Observe.Aggregation)
	}

	minQty, err := decimal.NewFromString(c.Trade.MinQuantity)
	if err != nil {
		return fmt.Errorf("trade.min_quantity %q is not a decimal", c.Trade.MinQuantity)
	}
	if !minQty.IsPositive() {
		return fmt.Errorf("trade.min_quantity must be positive, got %s", minQty)
	}

	if c.Poll.Interval <= 0 {
		return errors.New("poll.interval must be positive")
	}

	for i, w := range c.Watch {
		if err := w.validate(fmt.Sprintf("watch[%d]", i)); err != nil {
			return err
		}
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return errors.New("cache.addr is required when cache is enabled")
	}

	if c.Store.Enabled {
		if err := c.Store.DB.validate("store.db"); err != nil {
			return err
		}
	}

	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return fmt.Errorf("health.port must be between 1 and 65535, got %d", c.Health.Port)
	}

	return nil
}

func (w *WatchConfig) validate(prefix string) error {
	if w.Pair == "" {
		return fmt.Errorf("%s.pair is required", prefix)
	}
	for j, t := range w.Targets {
		tp := fmt.Sprintf("%s.targets[%d]", prefix, j)
		if t.Side != "buy" && t.Side != "sell" {
			return fmt.Errorf("%s.side must be buy or sell, got %q", tp, t.Side)
		}
		price, err := decimal.NewFromString(t.Price)
		if err != nil {
			return fmt.Errorf("%s.price %q is not a decimal", tp, t.Price)
		}
		if !price.IsPositive() {
			return fmt.Errorf("%s.price must be positive, got %s", tp, price)
		}
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
