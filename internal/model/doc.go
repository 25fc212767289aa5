// Package model defines shared data types used across bitbar-trademan.
//
// Conventions:
//   - Prices and quantities: shopspring decimal (exact arithmetic, no float drift)
//   - Timestamps: int64 seconds since Unix epoch, as reported by the exchange
//   - Pair symbols: "BASE_QUOTE" (e.g. "BTC_USD")
package model
