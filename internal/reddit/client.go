package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"

	"github.com/ternarybob/speculor/internal/common"
)

const (
	tokenURL   = "https://www.reddit.com/api/v1/access_token"
	apiBaseURL = "https://oauth.reddit.com"

	// DefaultTimeout bounds each API call.
	DefaultTimeout = 15 * time.Second

	defaultUserAgent = "speculor/1.0"

	// maxPages caps pagination on search.
	maxPages = 3
)

// Client is the social-discussion API adapter. The bearer token is
// cached with its expiry and refreshed lazily; concurrent callers may
// race to refresh it redundantly, which is harmless.
type Client struct {
	oauthConfig *oauth2.Config
	username    string
	password    string
	userAgent   string
	apiBase     string
	httpClient  *http.Client
	logger      arbor.ILogger

	mu    sync.Mutex
	token *oauth2.Token
}

// ClientOption configures the Client.
type ClientOption func(*Client)

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

// WithTokenURL overrides the token endpoint (tests).
func WithTokenURL(u string) ClientOption {
	return func(c *Client) {
		c.oauthConfig.Endpoint = oauth2.Endpoint{TokenURL: u, AuthStyle: oauth2.AuthStyleInHeader}
	}
}

// WithAPIBaseURL overrides the API origin (tests).
func WithAPIBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.apiBase = strings.TrimSuffix(u, "/")
	}
}

// NewClient creates the adapter from script-app credentials.
func NewClient(config common.RedditConfig, opts ...ClientOption) *Client {
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		oauthConfig: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL, AuthStyle: oauth2.AuthStyleInHeader},
		},
		username:  config.Username,
		password:  config.Password,
		userAgent: userAgent,
		apiBase:   apiBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// bearerToken returns the cached token, refreshing it via the password
// grant when missing or expired.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.token
	c.mu.Unlock()

	if cached.Valid() {
		return cached.AccessToken, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauthConfig.PasswordCredentialsToken(ctx, c.username, c.password)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug().Str("expiry", token.Expiry.Format(time.RFC3339)).Msg("reddit token refreshed")
	}

	return token.AccessToken, nil
}

// get performs an authenticated GET and decodes the listing envelope.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*listing, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := c.apiBase + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	var result listing
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Search finds posts mentioning query in the given subreddit, following
// pagination up to maxPages or the requested limit.
func (c *Client) Search(ctx context.Context, subreddit, query string, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 25
	}

	var posts []Post
	after := ""

	for page := 0; page < maxPages && len(posts) < limit; page++ {
		params := url.Values{}
		params.Set("q", query)
		params.Set("restrict_sr", "1")
		params.Set("sort", "new")
		params.Set("limit", fmt.Sprintf("%d", limit))
		if after != "" {
			params.Set("after", after)
		}

		result, err := c.get(ctx, fmt.Sprintf("/r/%s/search", subreddit), params)
		if err != nil {
			return nil, fmt.Errorf("search in r/%s failed: %w", subreddit, err)
		}

		for _, child := range result.Data.Children {
			posts = append(posts, Post{
				ID:          child.Data.ID,
				Subreddit:   child.Data.Subreddit,
				Title:       child.Data.Title,
				Selftext:    child.Data.Selftext,
				Author:      child.Data.Author,
				Score:       child.Data.Score,
				NumComments: child.Data.NumComments,
				CreatedUTC:  child.Data.CreatedUTC,
				Permalink:   child.Data.Permalink,
			})
		}

		after = result.Data.After
		if after == "" {
			break
		}
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// Comments fetches a post's comment tree and flattens it depth-first.
func (c *Client) Comments(ctx context.Context, subreddit, postID string, limit int) ([]Comment, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/r/%s/comments/%s?limit=%d", c.apiBase, subreddit, postID, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("comments fetch for %s failed: %w", postID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("comments fetch for %s: unexpected status %d", postID, resp.StatusCode)
	}

	// The endpoint returns a two-element array: the post listing, then
	// the comment listing.
	var listings []listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("failed to decode comments response: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []Comment
	flattenComments(listings[1].Data.Children, 0, &comments)
	return comments, nil
}

// flattenComments walks the reply tree depth-first, collecting every
// comment node. "more" stubs and deleted bodies are skipped.
func flattenComments(children []thing, depth int, out *[]Comment) {
	for _, child := range children {
		if child.Kind != "t1" {
			continue
		}
		if child.Data.Body != "" && child.Data.Body != "[deleted]" && child.Data.Body != "[removed]" {
			*out = append(*out, Comment{
				Author: child.Data.Author,
				Body:   child.Data.Body,
				Score:  child.Data.Score,
				Depth:  depth,
			})
		}

		if len(child.Data.Replies) == 0 || string(child.Data.Replies) == `""` {
			continue
		}
		var nested listing
		if err := json.Unmarshal(child.Data.Replies, &nested); err != nil {
			continue
		}
		flattenComments(nested.Data.Children, depth+1, out)
	}
}
