package config

import "time"

// Config is the root configuration for bitbar-trademan.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Observe ObserveConfig `yaml:"observe"`
	Trade   TradeConfig   `yaml:"trade"`
	Poll    PollConfig    `yaml:"poll"`
	Watch   []WatchConfig `yaml:"watch"`
	Cache   CacheConfig   `yaml:"cache"`
	Store   StoreConfig   `yaml:"store"`
	Health  HealthConfig  `yaml:"health"`
}

// APIConfig holds EXMO API settings. Key and Secret normally arrive via
// ${ENV} expansion so credentials stay out of the file.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Key     string        `yaml:"key"`
	Secret  string        `yaml:"secret"`
	Timeout time.Duration `yaml:"timeout"`
}

// ObserveConfig holds the alerting thresholds. Decimal-valued settings are
// YAML strings so they parse exactly.
type ObserveConfig struct {
	Step        string `yaml:"step"`        // sensitivity threshold in percent
	Aggregation string `yaml:"aggregation"` // "min" or "mean"
}

// TradeConfig holds order constraints.
type TradeConfig struct {
	MinQuantity string `yaml:"min_quantity"` // exchange minimum, base units
}

// PollConfig holds watcher loop settings.
type PollConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// WatchConfig binds one currency pair to its observe targets.
type WatchConfig struct {
	Pair    string         `yaml:"pair"`
	Targets []TargetConfig `yaml:"targets"`
}

// TargetConfig is one watched price point.
type TargetConfig struct {
	Label string `yaml:"label"`
	Side  string `yaml:"side"`  // "buy" or "sell"
	Price string `yaml:"price"` // decimal string
}

// CacheConfig holds the optional Redis snapshot cache.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// StoreConfig holds the optional Postgres alert store.
type StoreConfig struct {
	Enabled bool     `yaml:"enabled"`
	DB      DBConfig `yaml:"db"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// HealthConfig holds the daemon health endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}
