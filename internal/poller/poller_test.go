package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evgenii/bitbar-trademan/internal/model"
	"github.com/evgenii/bitbar-trademan/internal/observe"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int
	data  map[string]model.Ticker
	err   error
}

func (f *fakeSource) Ticker(ctx context.Context) (map[string]model.Ticker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingHandler struct {
	mu      sync.Mutex
	batches []observe.Batch
}

func (h *recordingHandler) HandleBatch(b observe.Batch) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batches = append(h.batches, b)
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.batches)
}

func (h *recordingHandler) last() observe.Batch {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.batches[len(h.batches)-1]
}

func testEvaluator(source observe.TickerSource) *observe.Evaluator {
	pair := model.CurrencyPair{Base: "BTC", Quote: "USD"}
	watch := []observe.WatchEntry{{
		Pair: pair,
		Targets: []model.ObserveTarget{{
			Label: "entry",
			Side:  model.SideSell,
			Price: decimal.NewFromInt(100),
		}},
	}}
	return observe.NewEvaluator(source, watch, decimal.NewFromInt(5), observe.AggregateMin, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestPollerPollsImmediately(t *testing.T) {
	source := &fakeSource{data: map[string]model.Ticker{
		"BTC_USD": {BuyPrice: decimal.NewFromInt(100)},
	}}
	handler := &recordingHandler{}

	cfg := Config{Interval: time.Hour, Timeout: time.Second}
	p := New(cfg, testEvaluator(source), handler, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer p.Stop(context.Background())

	waitFor(t, time.Second, func() bool { return handler.count() >= 1 })

	batch := handler.last()
	if batch.ConnectionLost {
		t.Error("batch.ConnectionLost = true, want false")
	}
	if len(batch.Reports) != 1 {
		t.Fatalf("len(Reports) = %d, want 1", len(batch.Reports))
	}
	if batch.Reports[0].Outcome != observe.OutcomeEvaluated {
		t.Errorf("Outcome = %v, want evaluated", batch.Reports[0].Outcome)
	}
}

func TestPollerRepeatsOnInterval(t *testing.T) {
	source := &fakeSource{data: map[string]model.Ticker{
		"BTC_USD": {BuyPrice: decimal.NewFromInt(100)},
	}}
	handler := &recordingHandler{}

	cfg := Config{Interval: 10 * time.Millisecond, Timeout: time.Second}
	p := New(cfg, testEvaluator(source), handler, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer p.Stop(context.Background())

	waitFor(t, time.Second, func() bool { return handler.count() >= 3 })
}

func TestPollerSurvivesFeedFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	handler := &recordingHandler{}

	cfg := Config{Interval: 10 * time.Millisecond, Timeout: time.Second}
	p := New(cfg, testEvaluator(source), handler, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer p.Stop(context.Background())

	// Failed cycles still produce connection-lost batches and the
	// loop keeps polling.
	waitFor(t, time.Second, func() bool { return handler.count() >= 2 })

	batch := handler.last()
	if !batch.ConnectionLost {
		t.Error("batch.ConnectionLost = false, want true")
	}
	if source.callCount() < 2 {
		t.Errorf("source calls = %d, want >= 2", source.callCount())
	}
}

func TestPollerStop(t *testing.T) {
	source := &fakeSource{data: map[string]model.Ticker{}}
	handler := &recordingHandler{}

	cfg := Config{Interval: 5 * time.Millisecond, Timeout: time.Second}
	p := New(cfg, testEvaluator(source), handler, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	waitFor(t, time.Second, func() bool { return handler.count() >= 1 })

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	// No further cycles after Stop.
	n := handler.count()
	time.Sleep(30 * time.Millisecond)
	if handler.count() != n {
		t.Errorf("handler received batches after Stop: %d -> %d", n, handler.count())
	}
}
