package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/evgenii/bitbar-trademan/internal/model"
	"github.com/evgenii/bitbar-trademan/internal/observe"
)

// FallbackSource wraps a ticker source, storing every good snapshot and
// serving the stored copy when the upstream fails. The upstream error
// is returned unchanged when no cached snapshot is available.
type FallbackSource struct {
	inner  observe.TickerSource
	cache  *SnapshotCache
	logger *slog.Logger
}

// NewFallbackSource wraps inner with snapshot caching.
func NewFallbackSource(inner observe.TickerSource, cache *SnapshotCache, logger *slog.Logger) *FallbackSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackSource{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

func (s *FallbackSource) Ticker(ctx context.Context) (map[string]model.Ticker, error) {
	snapshot, err := s.inner.Ticker(ctx)
	if err == nil {
		if cerr := s.cache.Set(ctx, snapshot, time.Now()); cerr != nil {
			s.logger.Warn("failed to cache snapshot", "err", cerr)
		}
		return snapshot, nil
	}

	cached, cerr := s.cache.Get(ctx)
	if cerr != nil {
		s.logger.Warn("cache lookup failed", "err", cerr)
		return nil, err
	}
	if cached == nil {
		return nil, err
	}

	s.logger.Warn("serving cached snapshot",
		"age", time.Since(cached.FetchedAt),
		"err", err,
	)
	return cached.Tickers, nil
}
