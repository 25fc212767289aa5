package trade

import (
	"fmt"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// PlanOrder converts a raw human-entered quantity into an order whose
// quantity is stated in base-currency units. Both market sides convert
// toward the base asset, matching exchange order semantics where quantity is
// always the amount of the asset being traded.
func PlanOrder(rawValue string, pair model.CurrencyPair, side model.OrderSide, ticker model.Ticker) (model.OrderRequest, error) {
	amount, symbol, err := ParseAmount(rawValue)
	if err != nil {
		return model.OrderRequest{}, fmt.Errorf("plan order: %w", err)
	}

	quantity, err := Convert(amount, symbol, pair, ticker, ToSource)
	if err != nil {
		return model.OrderRequest{}, fmt.Errorf("plan order: %w", err)
	}

	return model.OrderRequest{
		Pair:     pair,
		Quantity: quantity,
		Side:     side,
	}, nil
}
