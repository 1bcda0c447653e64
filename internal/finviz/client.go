package finviz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/speculor/internal/common"
)

const (
	// DefaultBaseURL is the quote/screener page origin.
	DefaultBaseURL = "https://finviz.com"

	// DefaultTimeout bounds each page fetch.
	DefaultTimeout = 10 * time.Second

	// browserUserAgent is sent on every request; the pages reject
	// default Go client identification.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// requestsPerSecond throttles scraping politely.
	requestsPerSecond = 2
)

// Client fetches and parses quote/screener pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new page client.
func NewClient(config common.FinvizConfig, opts ...ClientOption) *Client {
	timeout := DefaultTimeout
	if config.Timeout != "" {
		if d, err := time.ParseDuration(config.Timeout); err == nil {
			timeout = d
		}
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
	if config.BaseURL != "" {
		c.baseURL = strings.TrimSuffix(config.BaseURL, "/")
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// fetch performs a GET request and parses the response body as HTML.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	if c.logger != nil {
		c.logger.Debug().Str("url", c.baseURL+path).Msg("finviz request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response HTML: %w", err)
	}

	return doc, nil
}

// Screen runs the screener with the given options.
// A page whose results table is absent yields an empty slice, not an
// error: the fetch succeeded, the page just had nothing to show.
func (c *Client) Screen(ctx context.Context, opts ScreenOptions) ([]ScreeningRow, error) {
	doc, err := c.fetch(ctx, "/screener.ashx", opts.queryParams())
	if err != nil {
		return nil, fmt.Errorf("screener fetch failed: %w", err)
	}
	rows := parseScreenerDocument(doc)
	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	return rows, nil
}

// Fundamentals fetches the quote page and extracts the snapshot metrics.
func (c *Client) Fundamentals(ctx context.Context, ticker string) (*FundamentalMetrics, error) {
	doc, err := c.quotePage(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return parseFundamentalsDocument(doc, ticker), nil
}

// InsiderActivity fetches the quote page and extracts the insider table.
func (c *Client) InsiderActivity(ctx context.Context, ticker string) ([]InsiderTransaction, error) {
	doc, err := c.quotePage(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return parseInsiderDocument(doc), nil
}

// News fetches the quote page and extracts the news table.
func (c *Client) News(ctx context.Context, ticker string, limit int) ([]NewsItem, error) {
	doc, err := c.quotePage(ctx, ticker)
	if err != nil {
		return nil, err
	}
	items := parseNewsDocument(doc)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *Client) quotePage(ctx context.Context, ticker string) (*goquery.Document, error) {
	params := url.Values{}
	params.Set("t", ticker)
	doc, err := c.fetch(ctx, "/quote.ashx", params)
	if err != nil {
		return nil, fmt.Errorf("quote fetch for %s failed: %w", ticker, err)
	}
	return doc, nil
}
