package exmo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrCredentialsRequired reports a signed endpoint called on a client built
// without credentials.
var ErrCredentialsRequired = errors.New("exmo: credentials required for signed endpoint")

// APIError represents a non-2xx response from the EXMO API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exmo api error %d: %s", e.StatusCode, e.Message)
}

// doRequest performs one HTTP request. A single fail-fast attempt: transport
// errors and non-2xx statuses surface immediately, never retried.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       respBody,
		}
	}

	return respBody, nil
}

// getJSON performs a public GET request and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// postSigned performs an authenticated POST: the form body gets a fresh
// nonce, is HMAC-SHA512 signed, and travels with Key/Sign headers. The raw
// response body is returned alongside decoding so callers can report the
// exchange's exact payload on rejection.
func (c *Client) postSigned(ctx context.Context, path string, form url.Values, result any) ([]byte, error) {
	if c.creds == nil {
		return nil, ErrCredentialsRequired
	}

	if form == nil {
		form = url.Values{}
	}
	form.Set("nonce", strconv.FormatInt(c.creds.Nonce(), 10))
	encoded := form.Encode()

	headers := c.creds.Headers(encoded)
	headers["Content-Type"] = "application/x-www-form-urlencoded"

	body, err := c.doRequest(ctx, http.MethodPost, path, strings.NewReader(encoded), headers)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return body, fmt.Errorf("unmarshal response: %w", err)
	}

	return body, nil
}
