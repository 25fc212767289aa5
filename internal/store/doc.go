// Package store persists grow/fall alerts to PostgreSQL for later audit.
package store
