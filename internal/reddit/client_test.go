package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculor/internal/common"
)

func testConfig() common.RedditConfig {
	return common.RedditConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		Username:     "user",
		Password:     "pass",
		UserAgent:    "speculor-test/0.1",
	}
}

func newTokenServer(t *testing.T, grants *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.FormValue("grant_type"))
		atomic.AddInt64(grants, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`)
	}))
}

func TestSearchPaginatesAndCachesToken(t *testing.T) {
	var grants int64
	tokenServer := newTokenServer(t, &grants)
	defer tokenServer.Close()

	var apiCalls int64
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "speculor-test/0.1", r.Header.Get("User-Agent"))

		call := atomic.AddInt64(&apiCalls, 1)
		after := ""
		if call == 1 {
			after = "t3_page2"
		}
		resp := map[string]any{
			"kind": "Listing",
			"data": map[string]any{
				"after": after,
				"children": []map[string]any{
					{"kind": "t3", "data": map[string]any{
						"id": fmt.Sprintf("post%d", call), "title": "AAPL to the moon",
						"subreddit": "stocks", "score": 10, "num_comments": 2,
					}},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer apiServer.Close()

	client := NewClient(testConfig(),
		WithTokenURL(tokenServer.URL),
		WithAPIBaseURL(apiServer.URL),
		WithLogger(arbor.NewLogger()),
	)

	posts, err := client.Search(context.Background(), "stocks", "AAPL", 5)
	require.NoError(t, err)

	assert.Len(t, posts, 2, "second page has empty after, pagination stops")
	assert.Equal(t, "post1", posts[0].ID)
	assert.Equal(t, "AAPL to the moon", posts[0].Title)
	assert.EqualValues(t, 1, atomic.LoadInt64(&grants), "token fetched once and cached")
	assert.EqualValues(t, 2, atomic.LoadInt64(&apiCalls))
}

func TestSearchTokenFailure(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusUnauthorized)
	}))
	defer tokenServer.Close()

	client := NewClient(testConfig(), WithTokenURL(tokenServer.URL))

	_, err := client.Search(context.Background(), "stocks", "AAPL", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token refresh failed")
}

func TestFlattenComments(t *testing.T) {
	nested := `{
		"kind": "Listing",
		"data": {"children": [
			{"kind": "t1", "data": {"author": "a", "body": "top level", "score": 5,
				"replies": {"kind": "Listing", "data": {"children": [
					{"kind": "t1", "data": {"author": "b", "body": "reply", "score": 2,
						"replies": {"kind": "Listing", "data": {"children": [
							{"kind": "t1", "data": {"author": "c", "body": "deep reply", "score": 1, "replies": ""}}
						]}}}},
					{"kind": "t1", "data": {"author": "d", "body": "[deleted]", "replies": ""}}
				]}}}},
			{"kind": "more", "data": {}}
		]}
	}`

	var root listing
	require.NoError(t, json.Unmarshal([]byte(nested), &root))

	var comments []Comment
	flattenComments(root.Data.Children, 0, &comments)

	require.Len(t, comments, 3, "more stubs and deleted bodies are skipped")
	assert.Equal(t, "top level", comments[0].Body)
	assert.Equal(t, 0, comments[0].Depth)
	assert.Equal(t, "reply", comments[1].Body)
	assert.Equal(t, 1, comments[1].Depth)
	assert.Equal(t, "deep reply", comments[2].Body)
	assert.Equal(t, 2, comments[2].Depth)
}

func TestTally(t *testing.T) {
	posts := []Post{
		{Title: "Feeling bullish on AAPL", Selftext: "bought calls today"},
		{Title: "Market crash incoming"},
	}
	comments := []Comment{
		{Body: "totally overvalued, buying puts"},
		{Body: "no sentiment here"},
	}

	tally := Tally(posts, comments)

	assert.Equal(t, 2, tally.BullishMentions, "bullish + calls")
	assert.Equal(t, 3, tally.BearishMentions, "crash + overvalued + puts")
}
