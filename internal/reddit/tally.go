package reddit

import "strings"

// Keyword lists for the crude sentiment tally. Matching is lowercase
// substring; precision is not the goal, the counts only steer the LLM
// summarizer's context.
var bullishKeywords = []string{
	"bullish", "moon", "calls", "buy the dip", "undervalued", "long",
	"rocket", "breakout", "all in",
}

var bearishKeywords = []string{
	"bearish", "puts", "overvalued", "short", "crash", "dump",
	"sell off", "bagholder", "drilling",
}

// Tally counts bullish and bearish keyword mentions across posts and
// comments.
func Tally(posts []Post, comments []Comment) SentimentTally {
	var tally SentimentTally

	count := func(text string) {
		lower := strings.ToLower(text)
		for _, kw := range bullishKeywords {
			if strings.Contains(lower, kw) {
				tally.BullishMentions++
			}
		}
		for _, kw := range bearishKeywords {
			if strings.Contains(lower, kw) {
				tally.BearishMentions++
			}
		}
	}

	for _, post := range posts {
		count(post.Title + " " + post.Selftext)
	}
	for _, comment := range comments {
		count(comment.Body)
	}

	return tally
}
