package trade

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// ErrUnknownCurrencySymbol reports an amount denominated in a currency that
// is neither side of the traded pair.
var ErrUnknownCurrencySymbol = errors.New("unknown currency symbol")

// Direction names the unit an amount is converted into.
type Direction int

const (
	// ToSource converts into base-currency units (the asset being traded).
	ToSource Direction = iota + 1
	// ToDestination converts into quote-currency units (the pricing side).
	ToDestination
)

func (d Direction) String() string {
	switch d {
	case ToSource:
		return "to_source"
	case ToDestination:
		return "to_destination"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Convert re-denominates a user-entered amount into the units named by
// direction. An amount already stated in the requested unit passes through
// unchanged; crossing the pair uses the ticker's sell price toward the base
// side and buy price toward the quote side.
func Convert(amount decimal.Decimal, symbol string, pair model.CurrencyPair, ticker model.Ticker, direction Direction) (decimal.Decimal, error) {
	switch symbol {
	case pair.Base:
		if direction == ToDestination {
			return amount.Mul(ticker.BuyPrice), nil
		}
		return amount, nil
	case pair.Quote:
		if direction == ToSource {
			return amount.Mul(ticker.SellPrice), nil
		}
		return amount, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not part of %s", ErrUnknownCurrencySymbol, symbol, pair)
	}
}
