// Package reddit is a thin adapter for the social-discussion API:
// password-grant OAuth token with lazy refresh, paginated search, and
// comment-tree flattening.
package reddit

import "encoding/json"

// Post is one search result.
type Post struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext,omitempty"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
}

// Comment is one flattened comment from a post's reply tree.
type Comment struct {
	Author string `json:"author"`
	Body   string `json:"body"`
	Score  int    `json:"score"`
	Depth  int    `json:"depth"`
}

// SentimentTally is a crude keyword count over post and comment text,
// used as context for the LLM summarizer.
type SentimentTally struct {
	BullishMentions int `json:"bullish_mentions"`
	BearishMentions int `json:"bearish_mentions"`
}

// listing mirrors the API's envelope shape: every payload is a "kind"
// plus "data" pair, children nested arbitrarily deep for comments.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string    `json:"kind"`
	Data thingData `json:"data"`
}

type thingData struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Body        string  `json:"body"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
	// Replies is either a nested listing or an empty string; decoded
	// lazily because the API is not consistent about the shape.
	Replies json.RawMessage `json:"replies"`
}
