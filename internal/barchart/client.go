package barchart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/speculor/internal/common"
)

const (
	// DefaultBaseURL is the options-ratio page origin.
	DefaultBaseURL = "https://www.barchart.com"

	// DefaultTimeout bounds each page fetch.
	DefaultTimeout = 15 * time.Second

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	requestsPerSecond = 1
)

// Client fetches and parses put/call ratio pages.
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
func NewClient(config common.BarchartConfig, opts ...ClientOption) *Client {
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

// PutCallRatio fetches the put/call ratio page for ticker and runs the
// extraction chain. Transport and HTTP failures return an error with
// the ticker embedded; a page that merely lacks the expected structure
// comes back as an Analysis with IsValid=false.
func (c *Client) PutCallRatio(ctx context.Context, ticker string) (*Analysis, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s/stocks/quotes/%s/put-call-ratios", c.baseURL, ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", ticker, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	if c.logger != nil {
		c.logger.Debug().Str("ticker", ticker).Str("url", reqURL).Msg("barchart request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("put/call fetch for %s failed: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("put/call fetch for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse put/call page for %s: %w", ticker, err)
	}

	return Parse(doc, ticker), nil
}
