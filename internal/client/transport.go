package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"qactl/pkg/logging"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultTimeout = 30 * time.Second

	// Catalogue listings are hot paths for sweep and batch preparation;
	// they are cached briefly and invalidated by mutating calls.
	catalogueCacheTTL     = 30 * time.Second
	catalogueCacheCleanup = time.Minute
)

// Client talks to the remote test service. It holds no mutable request
// state; every method is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	catalogue  *gocache.Cache
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the service at baseURL authenticating with the
// given bearer token. A missing token or base URL is a configuration error
// surfaced immediately rather than on first use.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		catalogue: gocache.New(catalogueCacheTTL, catalogueCacheCleanup),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do performs one authenticated request. A non-nil body is JSON-encoded;
// a non-nil out receives the decoded 2xx response body. Every non-2xx
// response becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("Client", "%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(method, path, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// apiError converts a non-2xx response into an *APIError, extracting a
// best-effort message from a JSON "message" field or the raw body.
func (c *Client) apiError(method, path string, resp *http.Response) error {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(data) > 0 {
		var payload struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(data, &payload); jsonErr == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
	}

	logging.Debug("Client", "%s %s failed: %d %s", method, path, apiErr.StatusCode, apiErr.Message)
	return apiErr
}

func (c *Client) invalidateCatalogue(projectID string) {
	c.catalogue.Delete(pagesCacheKey(projectID))
	c.catalogue.Delete(testsCacheKey(projectID))
}

func pagesCacheKey(projectID string) string { return "pages:" + projectID }
func testsCacheKey(projectID string) string { return "tests:" + projectID }
