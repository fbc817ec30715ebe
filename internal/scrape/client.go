package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// maxBodyBytes caps how much of a page is read. The kept excerpt is
// far smaller, so anything past this is never useful.
const maxBodyBytes = 2 << 20

// HTTPError is a non-2xx response with retry metadata.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Client fetches pages with browser-alike headers and retries on
// transient failures.
type Client struct {
	http      *http.Client
	userAgent string
	retries   int
	log       *zap.Logger

	backoffBase time.Duration
}

func NewClient(timeout time.Duration, retries int, userAgent string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		userAgent:   userAgent,
		retries:     retries,
		log:         log,
		backoffBase: time.Second,
	}
}

// Fetch retrieves a page body. Connection errors, 429 and 5xx are
// retried with exponential backoff; 429 honors Retry-After when the
// server sends one. Other statuses fail immediately.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		body, err := c.attemptFetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		httpErr, ok := err.(*HTTPError)
		if ok && !retryableStatus(httpErr.StatusCode) {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		if attempt == c.retries {
			break
		}

		// Exponential backoff: 1s, 2s, 4s
		backoff := time.Duration(1<<attempt) * c.backoffBase
		if ok && httpErr.StatusCode == http.StatusTooManyRequests && httpErr.RetryAfter > 0 {
			backoff = httpErr.RetryAfter
		}
		c.log.Debug("retrying fetch",
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("fetch %s failed after %d attempts: %w", url, c.retries+1, lastErr)
}

func (c *Client) attemptFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		var retryAfter time.Duration
		if h := resp.Header.Get("Retry-After"); h != "" {
			if seconds, err := strconv.Atoi(h); err == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, RetryAfter: retryAfter}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
