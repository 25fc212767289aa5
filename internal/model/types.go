package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Ticker is an immutable market snapshot for one currency pair.
// Produced fresh on every poll; never mutated.
type Ticker struct {
	BuyPrice  decimal.Decimal // Best bid
	SellPrice decimal.Decimal // Best ask
	LastTrade decimal.Decimal // Last executed trade price
	High      decimal.Decimal // 24h high
	Low       decimal.Decimal // 24h low
	Avg       decimal.Decimal // 24h average (pass-through, unused by calculation)
	Vol       decimal.Decimal // 24h volume in base currency (pass-through)
	VolCurr   decimal.Decimal // 24h volume in quote currency (pass-through)
	Updated   int64           // Exchange update time (s since epoch)
}

// CurrencyPair identifies a traded pair. Base is the asset being bought or
// sold, Quote is the pricing currency.
type CurrencyPair struct {
	Base  string
	Quote string
}

// ParsePair parses a combined symbol like "BTC_USD".
// Exactly one separator; both parts must be non-empty.
func ParsePair(symbol string) (CurrencyPair, error) {
	parts := strings.Split(symbol, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return CurrencyPair{}, fmt.Errorf("invalid pair symbol %q: want BASE_QUOTE", symbol)
	}
	return CurrencyPair{Base: parts[0], Quote: parts[1]}, nil
}

// Symbol returns the combined exchange symbol.
func (p CurrencyPair) Symbol() string {
	return p.Base + "_" + p.Quote
}

func (p CurrencyPair) String() string { return p.Symbol() }

// Side tags an observe target: which ticker price it is compared against.
type Side int

const (
	SideBuy Side = iota + 1
	SideSell
)

// ParseSide parses the configuration form of a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return 0, fmt.Errorf("invalid side %q: want buy or sell", s)
	}
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// ObserveTarget is a user-defined watch entry: a price point tagged buy or
// sell. Side determines which ticker price the target is compared against.
type ObserveTarget struct {
	Label string
	Side  Side
	Price decimal.Decimal
}

// OrderSide is the market order action. A typed enum so dispatch is
// exhaustive rather than stringly-typed.
type OrderSide int

const (
	MarketBuy OrderSide = iota + 1
	MarketSell
)

// ParseOrderSide parses the CLI form of an OrderSide.
func ParseOrderSide(s string) (OrderSide, error) {
	switch s {
	case "market_buy", "buy":
		return MarketBuy, nil
	case "market_sell", "sell":
		return MarketSell, nil
	default:
		return 0, fmt.Errorf("invalid order side %q: want market_buy or market_sell", s)
	}
}

// APIName returns the exchange wire name for the order type.
func (s OrderSide) APIName() string {
	switch s {
	case MarketBuy:
		return "market_buy"
	case MarketSell:
		return "market_sell"
	default:
		return fmt.Sprintf("OrderSide(%d)", int(s))
	}
}

func (s OrderSide) String() string { return s.APIName() }

// OrderRequest is a fully converted order ready for validation and
// submission. Quantity is always expressed in base-currency units.
type OrderRequest struct {
	Pair     CurrencyPair
	Quantity decimal.Decimal
	Side     OrderSide
}

// Balances maps currency symbol to available amount. Externally supplied,
// read-only to the core.
type Balances map[string]decimal.Decimal

// Available returns the holding for a currency, zero if absent.
func (b Balances) Available(currency string) decimal.Decimal {
	return b[currency]
}
