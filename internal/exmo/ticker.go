package exmo

import (
	"context"
	"fmt"

	"github.com/evgenii/bitbar-trademan/internal/model"
)

// Ticker fetches the full public market snapshot, one entry per traded
// pair. Transport failures, non-2xx statuses, and malformed payloads all
// surface as errors here; the observation engine maps any of them to a
// single connection-lost result for the poll.
func (c *Client) Ticker(ctx context.Context) (map[string]model.Ticker, error) {
	var payload map[string]tickerPayload
	if err := c.getJSON(ctx, pathTicker, &payload); err != nil {
		return nil, fmt.Errorf("fetch ticker: %w", err)
	}

	snapshot := make(map[string]model.Ticker, len(payload))
	for symbol, p := range payload {
		t, err := toTicker(p)
		if err != nil {
			return nil, fmt.Errorf("ticker %s: %w", symbol, err)
		}
		snapshot[symbol] = t
	}

	return snapshot, nil
}
