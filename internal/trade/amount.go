package trade

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount splits a free-form quantity of the form
// "<amount><optional space><symbol>" into its parts. Whitespace between the
// number and the symbol is optional: "0.0001 BTC" and "35USD" both parse.
// The symbol is normalized to upper case.
func ParseAmount(raw string) (decimal.Decimal, string, error) {
	s := strings.TrimSpace(raw)

	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}

	numPart := s[:i]
	symPart := strings.TrimSpace(s[i:])
	if numPart == "" || symPart == "" {
		return decimal.Decimal{}, "", fmt.Errorf("malformed quantity %q: want <amount><symbol>", raw)
	}
	for _, r := range symPart {
		if !unicode.IsLetter(r) {
			return decimal.Decimal{}, "", fmt.Errorf("malformed currency symbol in %q", raw)
		}
	}

	amount, err := decimal.NewFromString(numPart)
	if err != nil {
		return decimal.Decimal{}, "", fmt.Errorf("malformed amount in %q: %w", raw, err)
	}

	return amount, strings.ToUpper(symPart), nil
}
