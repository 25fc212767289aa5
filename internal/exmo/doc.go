// Package exmo provides the EXMO REST API client.
//
// Endpoints:
//   - Public:        GET  /v1/ticker
//   - Authenticated: POST /v1/user_info, POST /v1/order_create
//
// Authenticated requests are form-encoded, carry a monotonically increasing
// nonce, and are signed with HMAC-SHA512 (Key/Sign headers, see internal/auth).
//
// Every call is a single fail-fast attempt: no retries, no backoff. The
// watcher degrades a failed poll to a connection-lost result instead.
package exmo
