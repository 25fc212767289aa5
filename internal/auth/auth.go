// Package auth provides EXMO API authentication using HMAC-SHA512 signatures.
package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// Credentials holds the API key pair for signing requests.
type Credentials struct {
	Key    string // public API key (Key header)
	Secret string // shared secret for HMAC signing

	nonce atomic.Int64
}

// NewCredentials creates signing credentials. The nonce counter is seeded
// from the wall clock so restarts keep it monotonically increasing, as the
// exchange requires.
func NewCredentials(key, secret string) (*Credentials, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("API secret is required")
	}

	c := &Credentials{Key: key, Secret: secret}
	c.nonce.Store(time.Now().UnixMilli())
	return c, nil
}

// Nonce returns the next request nonce. Each call yields a strictly larger
// value.
func (c *Credentials) Nonce() int64 {
	return c.nonce.Add(1)
}

// Sign computes the hex HMAC-SHA512 signature of a form-encoded request body.
func (c *Credentials) Sign(body string) string {
	mac := hmac.New(sha512.New, []byte(c.Secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

// Headers generates the authentication headers for a signed POST body.
func (c *Credentials) Headers(body string) map[string]string {
	return map[string]string{
		"Key":  c.Key,
		"Sign": c.Sign(body),
	}
}
