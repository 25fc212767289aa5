package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL      = "https://api.exmo.com"
	DefaultAPITimeout   = 10 * time.Second
	DefaultStep         = "5"      // percent
	DefaultAggregation  = "min"    // safest: never grow while a target lags
	DefaultMinQuantity  = "0.0001" // exchange minimum order size
	DefaultPollInterval = 10 * time.Second
	DefaultCacheTTL     = time.Minute
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultMinConns     = 1
	DefaultHealthPort   = 8080
)

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	if c.Observe.Step == "" {
		c.Observe.Step = DefaultStep
	}
	if c.Observe.Aggregation == "" {
		c.Observe.Aggregation = DefaultAggregation
	}

	if c.Trade.MinQuantity == "" {
		c.Trade.MinQuantity = DefaultMinQuantity
	}

	if c.Poll.Interval == 0 {
		c.Poll.Interval = DefaultPollInterval
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}

	if c.Store.Enabled {
		applyDBDefaults(&c.Store.DB)
	}

	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
