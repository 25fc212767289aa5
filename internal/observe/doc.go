// Package observe implements the observation/alerting engine.
//
// For every watched pair it compares the current ticker against the
// configured targets, collapses the per-target deviations into one value,
// and derives the coarse status (ok/grow/fall) plus a highlight flag for
// the status bar. Batch evaluation degrades feed failures to a single
// connection-lost result and missing pairs to per-pair not-found reports.
package observe
