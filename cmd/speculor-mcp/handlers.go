package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculor/internal/analysis"
	"github.com/ternarybob/speculor/internal/barchart"
	"github.com/ternarybob/speculor/internal/common"
	"github.com/ternarybob/speculor/internal/finviz"
	"github.com/ternarybob/speculor/internal/llm"
	"github.com/ternarybob/speculor/internal/reddit"
	"github.com/ternarybob/speculor/internal/scoring"
)

// withRequestID tags every tool invocation with a correlation id so
// log lines from one call can be tied together.
func withRequestID(tool string, logger arbor.ILogger, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()
		logger.Debug().Str("request_id", requestID).Str("tool", tool).Msg("tool invoked")

		result, err := next(ctx, request)
		if err != nil {
			logger.Error().Err(err).Str("request_id", requestID).Str("tool", tool).Msg("tool handler failed")
		} else if result != nil && result.IsError {
			logger.Warn().Str("request_id", requestID).Str("tool", tool).Msg("tool returned error result")
		}
		return result, err
	}
}

// requireTicker validates the ticker argument; a nil result means the
// error result should be returned as-is.
func requireTicker(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	raw, err := request.RequireString("ticker")
	if err != nil {
		return "", mcp.NewToolResultError("ticker parameter is required")
	}
	ticker, err := common.NormalizeTicker(raw)
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return ticker, nil
}

// handleScreenStocks implements the screen_stocks tool
func handleScreenStocks(client *finviz.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 20)
		if limit > 100 {
			limit = 100
		}

		opts := finviz.ScreenOptions{
			Signal:    request.GetString("signal", ""),
			Sector:    request.GetString("sector", ""),
			MarketCap: request.GetString("market_cap", ""),
			Limit:     limit,
		}

		rows, err := client.Screen(ctx, opts)
		if err != nil {
			logger.Error().Err(err).Msg("screen_stocks failed")
			return mcp.NewToolResultError(fmt.Sprintf("Screening failed: %v", err)), nil
		}

		return mcp.NewToolResultText(toJSON(map[string]any{
			"count":   len(rows),
			"results": rows,
		})), nil
	}
}

// handleGetFundamentals implements the get_fundamentals tool
func handleGetFundamentals(client *finviz.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		metrics, err := client.Fundamentals(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("get_fundamentals failed")
			return mcp.NewToolResultError(fmt.Sprintf("Fundamentals for %s failed: %v", ticker, err)), nil
		}

		return mcp.NewToolResultText(toJSON(metrics)), nil
	}
}

// handleGetInsiderActivity implements the get_insider_activity tool
func handleGetInsiderActivity(client *finviz.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		transactions, err := client.InsiderActivity(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("get_insider_activity failed")
			return mcp.NewToolResultError(fmt.Sprintf("Insider activity for %s failed: %v", ticker, err)), nil
		}

		return mcp.NewToolResultText(toJSON(map[string]any{
			"ticker":       ticker,
			"count":        len(transactions),
			"transactions": transactions,
		})), nil
	}
}

// handleGetStockNews implements the get_stock_news tool
func handleGetStockNews(client *finviz.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		limit := request.GetInt("limit", 10)

		items, err := client.News(ctx, ticker, limit)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("get_stock_news failed")
			return mcp.NewToolResultError(fmt.Sprintf("News for %s failed: %v", ticker, err)), nil
		}

		return mcp.NewToolResultText(toJSON(map[string]any{
			"ticker": ticker,
			"count":  len(items),
			"news":   items,
		})), nil
	}
}

// handleAnalyzeInsiderSentiment implements the analyze_insider_sentiment tool
func handleAnalyzeInsiderSentiment(client *finviz.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		opts := scoring.InsiderOptions{
			AnalysisPeriodDays:  request.GetInt("analysis_period", scoring.DefaultAnalysisPeriodDays),
			MinTransactionValue: request.GetFloat("min_transaction_value", scoring.DefaultMinTransactionValue),
		}

		rows, err := client.InsiderActivity(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("analyze_insider_sentiment failed")
			return mcp.NewToolResultError(fmt.Sprintf("Insider sentiment for %s failed: %v", ticker, err)), nil
		}

		sentiment := scoring.CalculateInsiderSentiment(ticker, analysis.ToTransactions(rows), opts)
		return mcp.NewToolResultText(toJSON(sentiment)), nil
	}
}

// handleAnalyzeFinancialHealth implements the analyze_financial_health tool
func handleAnalyzeFinancialHealth(client *finviz.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		defaults := scoring.DefaultWeights()
		weights := scoring.Weights{
			Profitability: request.GetFloat("profitability_weight", defaults.Profitability),
			Liquidity:     request.GetFloat("liquidity_weight", defaults.Liquidity),
			Leverage:      request.GetFloat("leverage_weight", defaults.Leverage),
			Efficiency:    request.GetFloat("efficiency_weight", defaults.Efficiency),
			Growth:        request.GetFloat("growth_weight", defaults.Growth),
		}

		metrics, err := client.Fundamentals(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("analyze_financial_health failed")
			return mcp.NewToolResultError(fmt.Sprintf("Financial health for %s failed: %v", ticker, err)), nil
		}

		score := scoring.CalculateHealthScore(ticker, analysis.HealthInputsFromMetrics(metrics), weights)
		return mcp.NewToolResultText(toJSON(score)), nil
	}
}

// handleGetPutCallRatio implements the get_put_call_ratio tool
func handleGetPutCallRatio(client *barchart.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		result, err := client.PutCallRatio(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("get_put_call_ratio failed")
			return mcp.NewToolResultError(fmt.Sprintf("Put/call ratio for %s failed: %v", ticker, err)), nil
		}

		return mcp.NewToolResultText(toJSON(result)), nil
	}
}

// handleComprehensiveAnalysis implements the comprehensive_analysis tool
func handleComprehensiveAnalysis(service *analysis.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		// Aggregation never fails wholesale; per-section errors ride
		// inside the report.
		report := service.Comprehensive(ctx, ticker)
		return mcp.NewToolResultText(toJSON(report)), nil
	}
}

// handleSocialSentiment implements the get_social_sentiment tool
func handleSocialSentiment(client *reddit.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		subreddits := strings.Split(request.GetString("subreddits", "stocks"), ",")
		limit := request.GetInt("limit", 25)

		var posts []reddit.Post
		for _, subreddit := range subreddits {
			subreddit = strings.TrimSpace(subreddit)
			if subreddit == "" {
				continue
			}
			found, err := client.Search(ctx, subreddit, ticker, limit)
			if err != nil {
				logger.Error().Err(err).Str("ticker", ticker).Str("subreddit", subreddit).Msg("get_social_sentiment failed")
				return mcp.NewToolResultError(fmt.Sprintf("Social sentiment for %s failed: %v", ticker, err)), nil
			}
			posts = append(posts, found...)
		}

		// Fetch comments for the most-discussed post to enrich the tally.
		var comments []reddit.Comment
		if len(posts) > 0 {
			top := posts[0]
			for _, post := range posts[1:] {
				if post.NumComments > top.NumComments {
					top = post
				}
			}
			if top.NumComments > 0 {
				fetched, err := client.Comments(ctx, top.Subreddit, top.ID, 50)
				if err != nil {
					logger.Warn().Err(err).Str("post_id", top.ID).Msg("comment fetch failed, continuing with posts only")
				} else {
					comments = fetched
				}
			}
		}

		return mcp.NewToolResultText(toJSON(map[string]any{
			"ticker":     ticker,
			"subreddits": subreddits,
			"tally":      reddit.Tally(posts, comments),
			"posts":      posts,
			"comments":   comments,
		})), nil
	}
}

// handleSummarizeSentiment implements the summarize_sentiment tool
func handleSummarizeSentiment(summarizer *llm.Summarizer, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, errResult := requireTicker(request)
		if errResult != nil {
			return errResult, nil
		}

		contextText, err := request.RequireString("context")
		if err != nil || strings.TrimSpace(contextText) == "" {
			return mcp.NewToolResultError("context parameter is required"), nil
		}

		summary, err := summarizer.Summarize(ctx, ticker, contextText)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("summarize_sentiment failed")
			return mcp.NewToolResultError(fmt.Sprintf("Summarize for %s failed: %v", ticker, err)), nil
		}

		return mcp.NewToolResultText(toJSON(summary)), nil
	}
}
