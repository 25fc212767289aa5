package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

type fakeExchange struct {
	snapshot map[string]model.Ticker
	balances model.Balances

	tickerErr error
	userErr   error
	orderErr  error

	createdOrders []model.OrderRequest
	nextOrderID   int64
}

func (f *fakeExchange) Ticker(ctx context.Context) (map[string]model.Ticker, error) {
	return f.snapshot, f.tickerErr
}

func (f *fakeExchange) UserInfo(ctx context.Context) (model.Balances, error) {
	return f.balances, f.userErr
}

func (f *fakeExchange) CreateOrder(ctx context.Context, order model.OrderRequest) (int64, error) {
	if f.orderErr != nil {
		return 0, f.orderErr
	}
	f.createdOrders = append(f.createdOrders, order)
	return f.nextOrderID, nil
}

func TestTraderExecute(t *testing.T) {
	pair := btcUsd(t)
	snapshot := map[string]model.Ticker{
		"BTC_USD": marketTicker(t, "9100", "9300"),
	}

	t.Run("successful sell", func(t *testing.T) {
		ex := &fakeExchange{
			snapshot:    snapshot,
			balances:    model.Balances{"BTC": dec(t, "1.0")},
			nextOrderID: 42,
		}
		trader := NewTrader(ex, dec(t, "0.0001"), nil)

		sub, violations, err := trader.Execute(context.Background(), "0.001 BTC", pair, model.MarketSell)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(violations) != 0 {
			t.Fatalf("unexpected violations: %v", violations)
		}
		if sub == nil || sub.OrderID != 42 {
			t.Fatalf("Submission = %+v, want order id 42", sub)
		}
		if len(ex.createdOrders) != 1 {
			t.Fatalf("created %d orders, want 1", len(ex.createdOrders))
		}
		if !ex.createdOrders[0].Quantity.Equal(dec(t, "0.001")) {
			t.Errorf("submitted quantity = %s, want 0.001", ex.createdOrders[0].Quantity)
		}
	})

	t.Run("violations block submission", func(t *testing.T) {
		ex := &fakeExchange{
			snapshot: snapshot,
			balances: model.Balances{"BTC": dec(t, "0.00001")},
		}
		trader := NewTrader(ex, dec(t, "0.0001"), nil)

		sub, violations, err := trader.Execute(context.Background(), "0.001 BTC", pair, model.MarketSell)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub != nil {
			t.Fatal("submission should be blocked")
		}
		if len(violations) != 1 || violations[0].Reason != ReasonInsufficientBalance {
			t.Fatalf("violations = %v, want one insufficient_balance", violations)
		}
		if len(ex.createdOrders) != 0 {
			t.Errorf("created %d orders, want 0", len(ex.createdOrders))
		}
	})

	t.Run("pair not listed", func(t *testing.T) {
		ex := &fakeExchange{
			snapshot: map[string]model.Ticker{},
			balances: model.Balances{},
		}
		trader := NewTrader(ex, dec(t, "0.0001"), nil)

		_, _, err := trader.Execute(context.Background(), "0.001 BTC", pair, model.MarketSell)
		if !errors.Is(err, ErrPairNotListed) {
			t.Fatalf("expected ErrPairNotListed, got %v", err)
		}
	})

	t.Run("feed failure aborts", func(t *testing.T) {
		feedErr := errors.New("connection refused")
		ex := &fakeExchange{tickerErr: feedErr, balances: model.Balances{}}
		trader := NewTrader(ex, dec(t, "0.0001"), nil)

		_, _, err := trader.Execute(context.Background(), "0.001 BTC", pair, model.MarketSell)
		if !errors.Is(err, feedErr) {
			t.Fatalf("expected wrapped feed error, got %v", err)
		}
	})

	t.Run("rejection carries exchange error", func(t *testing.T) {
		rejection := errors.New(`exchange said: {"result":false,"error":"Error 50052: Insufficient funds"}`)
		ex := &fakeExchange{
			snapshot: snapshot,
			balances: model.Balances{"BTC": dec(t, "1.0")},
			orderErr: rejection,
		}
		trader := NewTrader(ex, dec(t, "0.0001"), nil)

		_, _, err := trader.Execute(context.Background(), "0.001 BTC", pair, model.MarketSell)
		if !errors.Is(err, rejection) {
			t.Fatalf("expected wrapped rejection, got %v", err)
		}
	})
}
