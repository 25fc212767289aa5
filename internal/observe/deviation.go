package observe

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// ErrInvalidSide reports an observe target whose side is neither buy nor sell.
var ErrInvalidSide = errors.New("invalid observe side")

var hundred = decimal.NewFromInt(100)

// Deviation computes the signed percent deviation of the current market
// against one observe target, normalized by the target price:
//
//	buy:  (sell_price - target) / target * 100
//	sell: (target - buy_price) / target * 100
//
// Positive means the price moved favorably for the target's side. The result
// is unrounded; rounding is a presentation concern applied by the caller.
func Deviation(target model.ObserveTarget, ticker model.Ticker) (decimal.Decimal, error) {
	switch target.Side {
	case model.SideBuy:
		return ticker.SellPrice.Sub(target.Price).Div(target.Price).Mul(hundred), nil
	case model.SideSell:
		return target.Price.Sub(ticker.BuyPrice).Div(target.Price).Mul(hundred), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidSide, target.Side)
	}
}
