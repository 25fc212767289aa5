package trade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// ErrPairNotListed reports a pair absent from the exchange ticker feed at
// planning time.
var ErrPairNotListed = errors.New("pair not listed in ticker feed")

// Exchange is the slice of the exchange client the trader depends on.
type Exchange interface {
	Ticker(ctx context.Context) (map[string]model.Ticker, error)
	UserInfo(ctx context.Context) (model.Balances, error)
	CreateOrder(ctx context.Context, order model.OrderRequest) (int64, error)
}

// Submission is a successfully accepted order. Ref is a client-side
// reference generated per attempt, carried through logs and the alert store
// for correlation.
type Submission struct {
	Ref     uuid.UUID
	OrderID int64
	Order   model.OrderRequest
}

// Trader wires the one-shot flow: fetch market and account state, plan,
// validate, submit.
type Trader struct {
	exchange    Exchange
	minQuantity decimal.Decimal
	logger      *slog.Logger
}

// NewTrader creates a Trader. A nil logger falls back to slog.Default.
func NewTrader(exchange Exchange, minQuantity decimal.Decimal, logger *slog.Logger) *Trader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Trader{
		exchange:    exchange,
		minQuantity: minQuantity,
		logger:      logger,
	}
}

// Execute runs one trading instruction end to end. The ticker snapshot and
// account info are fetched concurrently; either failure aborts the attempt.
// A non-empty violation list blocks submission and is returned for display;
// it is not an error. Submission rejections propagate as errors carrying the
// exchange's raw payload.
func (t *Trader) Execute(ctx context.Context, rawValue string, pair model.CurrencyPair, side model.OrderSide) (*Submission, []Violation, error) {
	var (
		snapshot map[string]model.Ticker
		balances model.Balances
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := t.exchange.Ticker(gctx)
		snapshot = s
		return err
	})
	g.Go(func() error {
		b, err := t.exchange.UserInfo(gctx)
		balances = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("fetch exchange state: %w", err)
	}

	ticker, ok := snapshot[pair.Symbol()]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrPairNotListed, pair)
	}

	order, err := PlanOrder(rawValue, pair, side, ticker)
	if err != nil {
		return nil, nil, err
	}

	if violations := Validate(order, balances, t.minQuantity); len(violations) > 0 {
		t.logger.Info("order blocked by validation",
			"pair", pair,
			"side", side,
			"violations", len(violations),
		)
		return nil, violations, nil
	}

	ref := uuid.New()
	t.logger.Info("submitting order",
		"ref", ref,
		"pair", pair,
		"side", side,
		"quantity", order.Quantity,
	)

	orderID, err := t.exchange.CreateOrder(ctx, order)
	if err != nil {
		return nil, nil, fmt.Errorf("submit order %s: %w", ref, err)
	}

	t.logger.Info("order accepted", "ref", ref, "order_id", orderID)

	return &Submission{Ref: ref, OrderID: orderID, Order: order}, nil, nil
}
