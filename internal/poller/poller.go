package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/evgenii/bitbar-trademan/internal/observe"
)

// BatchHandler receives evaluated batches.
type BatchHandler interface {
	HandleBatch(batch observe.Batch) error
}

// BatchHandlerFunc is a function adapter for BatchHandler.
type BatchHandlerFunc func(observe.Batch) error

func (f BatchHandlerFunc) HandleBatch(b observe.Batch) error {
	return f(b)
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // Poll interval (default: 10s)
	Timeout  time.Duration // Per-cycle timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 10 * time.Second,
		Timeout:  10 * time.Second,
	}
}

// Poller periodically evaluates the watchlist against fresh tickers.
type Poller struct {
	cfg       Config
	evaluator *observe.Evaluator
	handler   BatchHandler
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, evaluator *observe.Evaluator, handler BatchHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:       cfg,
		evaluator: evaluator,
		handler:   handler,
		logger:    logger,
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("watch poller started", "interval", p.cfg.Interval)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("watch poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.poll()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// poll runs one evaluation cycle. Each cycle is independent: an error
// here never stops the loop.
func (p *Poller) poll() {
	start := time.Now()

	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	batch, err := p.evaluator.Evaluate(ctx)
	if err != nil {
		p.logger.Error("evaluation cycle failed", "err", err)
		return
	}

	if batch.ConnectionLost {
		p.logger.Warn("ticker feed unavailable", "err", batch.Err)
	}

	if p.handler != nil {
		if err := p.handler.HandleBatch(batch); err != nil {
			p.logger.Warn("batch handler failed", "err", err)
			return
		}
	}

	p.logger.Info("poll cycle complete",
		"reports", len(batch.Reports),
		"duration", time.Since(start),
	)
}
