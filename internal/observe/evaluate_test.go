package observe

import (
	"context"
	"errors"
	"testing"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

type tickerSourceFunc func(ctx context.Context) (map[string]model.Ticker, error)

func (f tickerSourceFunc) Ticker(ctx context.Context) (map[string]model.Ticker, error) {
	return f(ctx)
}

func watchFor(t *testing.T, symbols ...string) []WatchEntry {
	t.Helper()
	entries := make([]WatchEntry, 0, len(symbols))
	for _, s := range symbols {
		pair, err := model.ParsePair(s)
		if err != nil {
			t.Fatalf("bad pair %q: %v", s, err)
		}
		entries = append(entries, WatchEntry{
			Pair:    pair,
			Targets: []model.ObserveTarget{buyTarget(t, "t", "100")},
		})
	}
	return entries
}

func TestEvaluateConnectionLost(t *testing.T) {
	feedErr := errors.New("dial tcp: connection refused")
	source := tickerSourceFunc(func(ctx context.Context) (map[string]model.Ticker, error) {
		return nil, feedErr
	})

	ev := NewEvaluator(source, watchFor(t, "BTC_USD", "ETH_USD"), dec(t, "5"), AggregateMin, nil)
	batch, err := ev.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("feed failure must not surface as an error, got %v", err)
	}
	if !batch.ConnectionLost {
		t.Error("ConnectionLost = false, want true")
	}
	if !errors.Is(batch.Err, feedErr) {
		t.Errorf("batch.Err = %v, want wrapped feed error", batch.Err)
	}
	if len(batch.Reports) != 0 {
		t.Errorf("len(Reports) = %d, want 0 (connection loss covers the whole poll)", len(batch.Reports))
	}
}

func TestEvaluateNotFoundDoesNotAbortSiblings(t *testing.T) {
	snapshot := map[string]model.Ticker{
		"BTC_USD": tickerWith(t, "104", "105", "104", "1000", "1"),
	}
	source := tickerSourceFunc(func(ctx context.Context) (map[string]model.Ticker, error) {
		return snapshot, nil
	})

	ev := NewEvaluator(source, watchFor(t, "DOGE_USD", "BTC_USD"), dec(t, "5"), AggregateMin, nil)
	batch, err := ev.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.ConnectionLost {
		t.Error("ConnectionLost = true, want false")
	}
	if len(batch.Reports) != 2 {
		t.Fatalf("len(Reports) = %d, want 2", len(batch.Reports))
	}

	missing := batch.Reports[0]
	if missing.Outcome != OutcomeNotFound {
		t.Errorf("DOGE_USD Outcome = %v, want not_found", missing.Outcome)
	}
	if missing.Ticker != nil {
		t.Error("not-found report should carry no ticker")
	}

	found := batch.Reports[1]
	if found.Outcome != OutcomeEvaluated {
		t.Errorf("BTC_USD Outcome = %v, want evaluated", found.Outcome)
	}
	if found.Ticker == nil {
		t.Fatal("evaluated report should carry the ticker")
	}
	if !found.State.Value.Decimal.Equal(dec(t, "5")) {
		t.Errorf("BTC_USD value = %s, want 5", found.State.Value.Decimal)
	}
}

func TestEvaluateInvalidSidePropagates(t *testing.T) {
	source := tickerSourceFunc(func(ctx context.Context) (map[string]model.Ticker, error) {
		return map[string]model.Ticker{
			"BTC_USD": tickerWith(t, "100", "100", "100", "100", "100"),
		}, nil
	})

	pair, _ := model.ParsePair("BTC_USD")
	watch := []WatchEntry{{
		Pair:    pair,
		Targets: []model.ObserveTarget{{Label: "bad", Price: dec(t, "100")}},
	}}

	ev := NewEvaluator(source, watch, dec(t, "5"), AggregateMin, nil)
	_, err := ev.Evaluate(context.Background())
	if !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
}
