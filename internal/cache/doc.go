// Package cache keeps the last good ticker snapshot in Redis so a
// status line can still be drawn while the exchange feed is down.
package cache
