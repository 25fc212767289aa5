package exmo

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestToTicker(t *testing.T) {
	p := tickerPayload{
		BuyPrice:  "9100.5",
		SellPrice: "9300",
		LastTrade: "9200.1",
		High:      "9400",
		Low:       "9000",
		Avg:       "9203.77",
		Vol:       "12.5",
		VolCurr:   "115000",
		Updated:   1522749674,
	}

	ticker, err := toTicker(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ticker.BuyPrice.Equal(mustDec(t, "9100.5")) {
		t.Errorf("BuyPrice = %s, want 9100.5", ticker.BuyPrice)
	}
	if !ticker.SellPrice.Equal(mustDec(t, "9300")) {
		t.Errorf("SellPrice = %s, want 9300", ticker.SellPrice)
	}
	if !ticker.Low.Equal(mustDec(t, "9000")) {
		t.Errorf("Low = %s, want 9000", ticker.Low)
	}
	if ticker.Updated != 1522749674 {
		t.Errorf("Updated = %d, want 1522749674", ticker.Updated)
	}
}

func TestToTickerMalformedField(t *testing.T) {
	fields := []string{"buy_price", "sell_price", "last_trade", "high", "low", "avg", "vol", "vol_curr"}

	for _, broken := range fields {
		t.Run(broken, func(t *testing.T) {
			p := tickerPayload{
				BuyPrice: "1", SellPrice: "1", LastTrade: "1",
				High: "1", Low: "1", Avg: "1", Vol: "1", VolCurr: "1",
			}
			switch broken {
			case "buy_price":
				p.BuyPrice = "x"
			case "sell_price":
				p.SellPrice = "x"
			case "last_trade":
				p.LastTrade = "x"
			case "high":
				p.High = "x"
			case "low":
				p.Low = "x"
			case "avg":
				p.Avg = "x"
			case "vol":
				p.Vol = "x"
			case "vol_curr":
				p.VolCurr = "x"
			}

			if _, err := toTicker(p); err == nil {
				t.Errorf("toTicker with broken %s expected error", broken)
			}
		})
	}
}

func TestToBalances(t *testing.T) {
	balances := toBalances(map[string]string{
		"BTC":  "2.5",
		"USD":  "0",
		"JUNK": "not-a-number",
	})

	if len(balances) != 2 {
		t.Fatalf("len(balances) = %d, want 2", len(balances))
	}
	if !balances["BTC"].Equal(mustDec(t, "2.5")) {
		t.Errorf("BTC = %s, want 2.5", balances["BTC"])
	}
	if !balances["USD"].IsZero() {
		t.Errorf("USD = %s, want 0", balances["USD"])
	}
}
