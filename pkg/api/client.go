// Package api is the gateway to the remote student-zenith REST backend.
// Every method issues one authenticated request and decodes the resource's
// wire shape; the server contract is not fully trusted, so list responses
// that fail to decode as arrays are coerced to empty collections.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 15 * time.Second

// Client issues authenticated requests against the backend on behalf of
// a single user session.
type Client struct {
	baseURL string
	token   string
	userID  string
	http    *http.Client
}

// NewClient creates a gateway client for the given API base URL,
// e.g. "http://localhost:5000/api/v1".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SetSession attaches the bearer token and user id used for all
// subsequent requests. Clearing both returns the client to a
// logged-out state.
func (c *Client) SetSession(token, userID string) {
	c.token = token
	c.userID = userID
}

// UserID returns the id of the user the client acts for, or "" when
// logged out.
func (c *Client) UserID() string {
	return c.userID
}

// SetTimeout overrides the default per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.http.Timeout = d
}

// Error is the typed failure raised for non-success HTTP responses.
// Callers surface Message as a transient UI error without crashing
// the view.
type Error struct {
	Resource   string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s request failed (%d): %s", e.Resource, e.StatusCode, e.Message)
}

// errorBody is the {"message": ...} shape the backend uses for failures.
type errorBody struct {
	Message string `json:"message"`
}

// do runs one request and returns the raw response body.
// A non-2xx status becomes an *Error carrying the resource name and the
// server's message when one can be decoded.
func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error encoding %s request: %w", resource, err)
		}

		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("error building %s request: %w", resource, err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling %s endpoint: %w", resource, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s response: %w", resource, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := resp.Status

		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Message != "" {
			msg = eb.Message
		}

		return nil, &Error{Resource: resource, StatusCode: resp.StatusCode, Message: msg}
	}

	return raw, nil
}

// decodeList decodes a list response, coercing anything that isn't an
// array to an empty collection.
func decodeList[T any](resource string, raw []byte) []T {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Str("resource", resource).Msg("non-array response coerced to empty collection")

		return []T{}
	}

	if out == nil {
		out = []T{}
	}

	return out
}

// decodeItem decodes a single-item response.
func decodeItem[T any](resource string, raw []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("error decoding %s response: %w", resource, err)
	}

	return &out, nil
}

// userQuery builds the ?userId= query attached to list requests.
func (c *Client) userQuery() url.Values {
	return url.Values{"userId": []string{c.userID}}
}
