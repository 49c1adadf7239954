// Package enrich fills in player birthdates and countries from
// Wikidata and parses raw ranking exports into seedable rosters.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds configuration for the enrichment HTTP client
type HTTPClientConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
	UserAgent    string
}

// DefaultHTTPClientConfig returns defaults tuned for the Wikidata API
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:      30 * time.Second,
		MaxRetries:   5,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 15 * time.Second,
		RateLimit:    3.0,
		UserAgent:    "sportology-seed/1.0",
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with a token-bucket
// rate limiter so batch seeding stays polite to the upstream API.
type RateLimitedHTTPClient struct {
	client    *retryablehttp.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewRateLimitedHTTPClient creates a rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *logrus.Logger) *RateLimitedHTTPClient {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = customRetryPolicy()
	retryClient.Logger = nil

	if logger != nil {
		retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt > 0 {
				logger.WithFields(logrus.Fields{
					"url":     req.URL.String(),
					"attempt": attempt,
				}).Debug("Retrying enrichment request")
			}
		}
	}

	return &RateLimitedHTTPClient{
		client:    retryClient,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		userAgent: cfg.UserAgent,
	}
}

// Get executes a GET request after waiting for the rate limiter
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	return c.client.Do(req)
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// customRetryPolicy retries on network errors, 429 and 5xx responses
func customRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return true, err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return true, nil
		}
		return false, nil
	}
}
