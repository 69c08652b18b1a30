// Package feed provides HTTP fetching and RSS/HTML parsing shared by all
// newsletter sources.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxBodyBytes = 4 << 20 // 4 MiB cap per response

// StatusError is returned when a fetch gets a non-200 response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d from %s", e.Code, e.URL)
}

// Transient reports whether the status is worth retrying.
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// Timeout for a single request. Defaults to 30s.
	Timeout time.Duration

	// UserAgent sent with every request.
	UserAgent string
}

// Client is a shared HTTP client for feed sources.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a Client with the given options.
func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "newsletter-factory/1.0"
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: ua,
	}
}

// Get fetches a URL and returns the response body.
// Non-200 responses return a *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", url, err)
	}
	return body, nil
}
