package exmo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

func parsePrice(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("field %s: malformed decimal %q", field, value)
	}
	return d, nil
}

// toTicker converts a wire payload to the domain snapshot. Any unparseable
// price field makes the whole entry malformed.
func toTicker(p tickerPayload) (model.Ticker, error) {
	var (
		t   model.Ticker
		err error
	)

	if t.BuyPrice, err = parsePrice("buy_price", p.BuyPrice); err != nil {
		return model.Ticker{}, err
	}
	if t.SellPrice, err = parsePrice("sell_price", p.SellPrice); err != nil {
		return model.Ticker{}, err
	}
	if t.LastTrade, err = parsePrice("last_trade", p.LastTrade); err != nil {
		return model.Ticker{}, err
	}
	if t.High, err = parsePrice("high", p.High); err != nil {
		return model.Ticker{}, err
	}
	if t.Low, err = parsePrice("low", p.Low); err != nil {
		return model.Ticker{}, err
	}
	if t.Avg, err = parsePrice("avg", p.Avg); err != nil {
		return model.Ticker{}, err
	}
	if t.Vol, err = parsePrice("vol", p.Vol); err != nil {
		return model.Ticker{}, err
	}
	if t.VolCurr, err = parsePrice("vol_curr", p.VolCurr); err != nil {
		return model.Ticker{}, err
	}
	t.Updated = p.Updated

	return t, nil
}

// toBalances converts the exchange's string balance map to decimals.
// Unparseable entries are skipped: an exotic listing must not take down the
// whole account view.
func toBalances(raw map[string]string) model.Balances {
	balances := make(model.Balances, len(raw))
	for currency, amount := range raw {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			continue
		}
		balances[currency] = d
	}
	return balances
}
