package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evgenii/bitbar-trademan/internal/config"
	"github.com/evgenii/bitbar-trademan/internal/observe"
)

const alertSchema = `
CREATE TABLE IF NOT EXISTS alerts (
    id         UUID PRIMARY KEY,
    pair       TEXT NOT NULL,
    status     TEXT NOT NULL,
    value      NUMERIC NOT NULL,
    highlight  BOOLEAN NOT NULL,
    polled_at  TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS alerts_pair_polled_at_idx ON alerts (pair, polled_at);
`

// Connect creates a connection pool and verifies it.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connStr := BuildConnString(cfg)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// AlertStore records grow/fall alerts.
type AlertStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates an AlertStore over an existing pool.
func New(pool *pgxpool.Pool, logger *slog.Logger) *AlertStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertStore{pool: pool, logger: logger}
}

// InitSchema creates the alerts table if it does not exist.
func (s *AlertStore) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, alertSchema); err != nil {
		return fmt.Errorf("init alert schema: %w", err)
	}
	return nil
}

// RecordBatch inserts one row per grow/fall report in the batch.
// OK reports and connection-lost batches leave no trace.
func (s *AlertStore) RecordBatch(ctx context.Context, batch observe.Batch) error {
	for _, report := range batch.Reports {
		if report.Outcome != observe.OutcomeEvaluated {
			continue
		}
		if report.State.Status == observe.StatusOK {
			continue
		}

		_, err := s.pool.Exec(ctx,
			`INSERT INTO alerts (id, pair, status, value, highlight, polled_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(),
			report.Pair.Symbol(),
			report.State.Status.String(),
			report.State.Value.Decimal,
			report.State.Highlight,
			batch.PolledAt,
		)
		if err != nil {
			return fmt.Errorf("insert alert for %s: %w", report.Pair, err)
		}

		s.logger.Info("alert recorded",
			"pair", report.Pair.Symbol(),
			"status", report.State.Status,
			"value", report.State.Value.Decimal,
		)
	}
	return nil
}

// Close releases the pool.
func (s *AlertStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
