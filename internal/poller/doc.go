// Package poller runs the watch evaluation on a fixed interval and
// hands each resulting batch to a handler.
package poller
