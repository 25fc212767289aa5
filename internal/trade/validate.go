package trade

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// Reason enumerates the business rules an order can violate.
type Reason int

const (
	ReasonInvalidQuantity Reason = iota + 1
	ReasonBelowMinimum
	ReasonInsufficientBalance
)

func (r Reason) String() string {
	switch r {
	case ReasonInvalidQuantity:
		return "invalid_quantity"
	case ReasonBelowMinimum:
		return "below_minimum"
	case ReasonInsufficientBalance:
		return "insufficient_balance"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Violation is a single business-rule failure with human context.
// A non-empty set blocks submission; it is a return value, not an error.
type Violation struct {
	Reason Reason
	Detail string
}

func (v Violation) String() string {
	return v.Reason.String() + ": " + v.Detail
}

// Validate checks a proposed order against account balances and the
// exchange minimum-quantity constraint. All rules are evaluated, not
// short-circuited, so the caller sees every problem at once. An empty
// result means the order may be submitted.
//
// Balance is checked in the currency the order spends: the quote holding
// for market_buy, the base holding for market_sell.
func Validate(order model.OrderRequest, balances model.Balances, minQuantity decimal.Decimal) []Violation {
	var violations []Violation

	if !order.Quantity.IsPositive() {
		violations = append(violations, Violation{
			Reason: ReasonInvalidQuantity,
			Detail: fmt.Sprintf("quantity %s is not a positive number", order.Quantity),
		})
	}

	if order.Quantity.LessThan(minQuantity) {
		violations = append(violations, Violation{
			Reason: ReasonBelowMinimum,
			Detail: fmt.Sprintf("quantity %s is below the exchange minimum %s", order.Quantity, minQuantity),
		})
	}

	var currency string
	switch order.Side {
	case model.MarketBuy:
		currency = order.Pair.Quote
	case model.MarketSell:
		currency = order.Pair.Base
	}

	available := balances.Available(currency)
	if available.LessThan(order.Quantity) {
		violations = append(violations, Violation{
			Reason: ReasonInsufficientBalance,
			Detail: fmt.Sprintf("%s balance %s is below required %s", currency, available, order.Quantity),
		})
	}

	return violations
}
