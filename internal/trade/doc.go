// Package trade implements the order-conversion and validation engine.
//
// A human-entered quantity ("0.0001 BTC", "35USD") is converted into the
// base-currency units the exchange order API expects, validated against
// account balances and the exchange minimum, and submitted as a signed
// market order. Violations are values, not errors: the caller sees every
// problem at once and decides whether to abort.
package trade
