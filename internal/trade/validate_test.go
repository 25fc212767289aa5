package trade

import (
	"strings"
	"testing"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

func TestValidate(t *testing.T) {
	pair := btcUsd(t)
	minQty := dec(t, "0.0001")

	tests := []struct {
		name        string
		order       model.OrderRequest
		balances    model.Balances
		wantReasons []Reason
	}{
		{
			name:        "valid sell order",
			order:       model.OrderRequest{Pair: pair, Quantity: dec(t, "0.001"), Side: model.MarketSell},
			balances:    model.Balances{"BTC": dec(t, "1.0")},
			wantReasons: nil,
		},
		{
			name:        "below minimum",
			order:       model.OrderRequest{Pair: pair, Quantity: dec(t, "0.00005"), Side: model.MarketSell},
			balances:    model.Balances{"BTC": dec(t, "1.0")},
			wantReasons: []Reason{ReasonBelowMinimum},
		},
		{
			name:        "sell checks base holding",
			order:       model.OrderRequest{Pair: pair, Quantity: dec(t, "0.001"), Side: model.MarketSell},
			balances:    model.Balances{"BTC": dec(t, "0.00005"), "USD": dec(t, "10000")},
			wantReasons: []Reason{ReasonInsufficientBalance},
		},
		{
			name:        "buy checks quote holding",
			order:       model.OrderRequest{Pair: pair, Quantity: dec(t, "50"), Side: model.MarketBuy},
			balances:    model.Balances{"BTC": dec(t, "10"), "USD": dec(t, "10")},
			wantReasons: []Reason{ReasonInsufficientBalance},
		},
		{
			name:        "zero quantity reports every broken rule",
			order:       model.OrderRequest{Pair: pair, Quantity: dec(t, "0"), Side: model.MarketSell},
			balances:    model.Balances{"BTC": dec(t, "1.0")},
			wantReasons: []Reason{ReasonInvalidQuantity, ReasonBelowMinimum},
		},
		{
			name:        "missing holding counts as zero",
			order:       model.OrderRequest{Pair: pair, Quantity: dec(t, "0.001"), Side: model.MarketSell},
			balances:    model.Balances{},
			wantReasons: []Reason{ReasonInsufficientBalance},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate(tt.order, tt.balances, minQty)
			if len(violations) != len(tt.wantReasons) {
				t.Fatalf("got %d violations %v, want %d", len(violations), violations, len(tt.wantReasons))
			}
			for i, v := range violations {
				if v.Reason != tt.wantReasons[i] {
					t.Errorf("violation[%d].Reason = %v, want %v", i, v.Reason, tt.wantReasons[i])
				}
			}
		})
	}
}

func TestValidateBalanceDetailNamesCurrency(t *testing.T) {
	pair := btcUsd(t)

	t.Run("sell names base currency", func(t *testing.T) {
		order := model.OrderRequest{Pair: pair, Quantity: dec(t, "0.001"), Side: model.MarketSell}
		violations := Validate(order, model.Balances{"BTC": dec(t, "0.00005")}, dec(t, "0.0001"))
		if len(violations) != 1 {
			t.Fatalf("got %d violations, want 1", len(violations))
		}
		if !strings.Contains(violations[0].Detail, "BTC") {
			t.Errorf("Detail = %q, want mention of BTC", violations[0].Detail)
		}
		if !strings.Contains(violations[0].Detail, "0.00005") || !strings.Contains(violations[0].Detail, "0.001") {
			t.Errorf("Detail = %q, want available vs required amounts", violations[0].Detail)
		}
	})

	t.Run("buy names quote currency", func(t *testing.T) {
		order := model.OrderRequest{Pair: pair, Quantity: dec(t, "5"), Side: model.MarketBuy}
		violations := Validate(order, model.Balances{"USD": dec(t, "1")}, dec(t, "0.0001"))
		if len(violations) != 1 {
			t.Fatalf("got %d violations, want 1", len(violations))
		}
		if !strings.Contains(violations[0].Detail, "USD") {
			t.Errorf("Detail = %q, want mention of USD", violations[0].Detail)
		}
	})
}
