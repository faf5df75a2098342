package naver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lepinkainen/moviesearch/internal/errors"
)

const (
	// PageSize is the server's default number of items per response.
	PageSize = 10
	// maxStart is the largest start index the API accepts.
	maxStart = 1000
)

// StartFor returns the 1-based start index of a 0-based page.
func StartFor(page int) int {
	return page*PageSize + 1
}

// SearchPage fetches one page of results for query.
//
// A blank query returns an empty page without touching the network. Failures
// come back as typed errors from internal/errors together with an empty page.
func (c *Client) SearchPage(ctx context.Context, query string, page int) (PageResult, error) {
	if strings.TrimSpace(query) == "" {
		return EmptyPage(), nil
	}
	if page < 0 {
		return EmptyPage(), fmt.Errorf("page must be non-negative, got %d", page)
	}
	if left := c.rateLimiter.Remaining(); left > 0 {
		return EmptyPage(), errors.NewRateLimitErrorWithRetry("Naver API rate limit cooldown active", left)
	}

	body, err := c.getBytes(ctx, c.pageURL(query, page))
	if err != nil {
		if errors.IsRateLimitError(err) {
			c.rateLimiter.CoolDown(c.cooldown)
		}
		return EmptyPage(), err
	}

	result, err := DecodePage(body, page)
	if err != nil {
		return EmptyPage(), err
	}
	if result.NextPage != nil && StartFor(*result.NextPage) > maxStart {
		result.NextPage = nil
	}
	return result, nil
}

// Search is the total form of SearchPage: every failure, cancellation
// included, degrades to an empty page. Rate limiting is reported as a
// warning; other failures only at debug level.
func (c *Client) Search(ctx context.Context, query string, page int) PageResult {
	if strings.TrimSpace(query) != "" && c.rateLimiter.CoolingDown() {
		c.log().Debug("Skipping search during rate limit cooldown",
			"limiter", c.rateLimiter.Name(), "remaining", c.rateLimiter.Remaining(), "query", query, "page", page)
		return EmptyPage()
	}

	result, err := c.SearchPage(ctx, query, page)
	if err == nil {
		return result
	}

	switch {
	case ctx.Err() != nil:
		c.log().Debug("Search cancelled", "query", query, "page", page)
	case errors.IsRateLimitError(err):
		c.log().Warn("Naver API rate limit exceeded; wait 60 seconds and try again",
			"limiter", c.rateLimiter.Name(), "query", query, "page", page)
	default:
		c.log().Debug("Search failed", "query", query, "page", page, "error", err)
	}
	return EmptyPage()
}

// pageURL builds the request URL. The query is escaped for the query
// component with spaces as %20.
func (c *Client) pageURL(query string, page int) string {
	encoded := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return fmt.Sprintf("%s?query=%s&start=%d", c.baseURL, encoded, StartFor(page))
}
