package naver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/lepinkainen/moviesearch/internal/errors"
)

const (
	maxBodyBytes  = 4 << 20
	errorBodySize = 512
)

func (c *Client) getBytes(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		body, err := c.doRequest(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil || !isRetryable(err) || attempt == c.retryAttempts {
			return nil, err
		}
		c.log().Debug("Retrying search request", "attempt", attempt, "error", err)
		if err := sleepContext(ctx, backoffDelay(attempt)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerClientID, c.credentials.ClientID)
	req.Header.Set(headerClientSecret, c.credentials.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodySize))
		return nil, apperrors.NewRateLimitErrorWithRetry("Naver API rate limit exceeded", apperrors.DefaultRetryAfter)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodySize))
		return nil, apperrors.NewStatusError(resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}
	return body, nil
}

func isRetryable(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		// Network errors (connection resets etc.)
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func backoffDelay(attempt int) time.Duration {
	// exponential backoff capped at 10 seconds
	delay := time.Duration(1<<uint(attempt-1)) * 250 * time.Millisecond
	if delay > 10*time.Second {
		return 10 * time.Second
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
