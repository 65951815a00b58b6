package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/lensvault/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client fetches catalog pages with rate limiting and retries. The
// catalog host is slow and rate-sensitive, so requests are spaced out and
// transient failures are retried with backoff.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
	debug      bool
}

// NewClient creates a catalog page client. requestDelay is the minimum
// spacing between requests.
func NewClient(requestDelay time.Duration, maxRetries int, userAgent string) *Client {
	if requestDelay <= 0 {
		requestDelay = 2 * time.Second
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if userAgent == "" {
		userAgent = "LensVault/1.0"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Every(requestDelay), 1),
		maxRetries: maxRetries,
	}
}

// SetDebug enables request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchPage retrieves a single catalog page body. Transient failures and
// non-2xx statuses are retried up to maxRetries with linear backoff.
func (c *Client) FetchPage(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if c.debug {
			log.Printf("[SCRAPE] Attempt %d/%d failed for %s: %v", attempt, c.maxRetries, url, err)
		}
		if attempt < c.maxRetries {
			select {
			case <-time.After(retryBackoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("%w: %s: %v", domain.ErrScrapeFailure, url, lastErr)
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// retryBackoff grows linearly with the attempt number: 500ms, 1s, 1.5s.
func retryBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}
