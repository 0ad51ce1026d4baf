// Package client is the REST consumer of the siteledger API. It implements
// the reconciliation source interfaces so the engine can run against a
// remote backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rpggio/siteledger/internal/domain/faults"
)

// DefaultTimeout bounds each round-trip when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// ResponseError is a non-2xx answer from the server. It unwraps to
// faults.ErrNetwork.
type ResponseError struct {
	StatusCode   int
	Code         string
	Message      string
	RecoveryHint string
}

func (e *ResponseError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *ResponseError) Unwrap() error {
	return faults.ErrNetwork
}

// Client calls the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", faults.ErrNetwork, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", faults.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", faults.ErrNetwork, method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	rerr := &ResponseError{StatusCode: resp.StatusCode}

	var apiErr struct {
		Code         string `json:"code"`
		Message      string `json:"message"`
		RecoveryHint string `json:"recovery_hint"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
		rerr.Code = apiErr.Code
		rerr.Message = apiErr.Message
		rerr.RecoveryHint = apiErr.RecoveryHint
		return rerr
	}
	rerr.Message = strings.TrimSpace(string(respBody))
	if rerr.Message == "" {
		rerr.Message = http.StatusText(resp.StatusCode)
	}
	return rerr
}

// IsStatus reports whether err is a server answer with the given status.
func IsStatus(err error, status int) bool {
	var rerr *ResponseError
	return errors.As(err, &rerr) && rerr.StatusCode == status
}

func escape(id string) string {
	return url.PathEscape(id)
}
