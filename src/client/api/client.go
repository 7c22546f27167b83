// Package api provides a typed client for the CWE REST API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public CWE REST API endpoint.
const DefaultBaseURL = "https://cwe-api.mitre.org/api/v1"

// DefaultTimeout is the request timeout in seconds used when none is configured.
const DefaultTimeout = 30

// levelTrace matches the CLI's trace level, below slog.LevelDebug.
const levelTrace = slog.LevelDebug - 4

// Client is the API client for the CWE REST API
type Client struct {
	BaseURL    string
	UserAgent  string
	RequestID  string // sent as X-Request-ID when set
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a new API client. A nil logger discards all output.
func NewClient(baseURL string, timeout int, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: "cwe-cli",
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		Logger: logger.With("component", "api"),
	}
}

// get performs a GET request against path and decodes the JSON body into out.
// endpoint names the operation in decode errors.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, target)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.Logger.Log(ctx, levelTrace, "response body", "endpoint", endpoint, "bytes", len(body), "body", string(body))
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// doRequest performs a single HTTP request. Any status outside 2xx is
// returned as an *APIError with the body attached.
func (c *Client) doRequest(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.RequestID != "" {
		req.Header.Set("X-Request-ID", c.RequestID)
	}

	start := time.Now()
	c.Logger.Debug("sending request", "method", method, "url", target)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Debug("request failed", "url", target, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.Logger.Debug("received response",
		"url", target,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyData, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        target,
			Body:       strings.TrimSpace(string(bodyData)),
		}
	}

	return resp, nil
}
