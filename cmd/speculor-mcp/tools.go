package main

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ternarybob/speculor/internal/finviz"
)

// createScreenStocksTool returns the screen_stocks tool definition
func createScreenStocksTool() mcp.Tool {
	return mcp.NewTool("screen_stocks",
		mcp.WithDescription("Screen stocks by signal preset, sector and market cap"),
		mcp.WithString("signal",
			mcp.Description("Signal preset: "+strings.Join(finviz.KnownSignals(), ", ")),
		),
		mcp.WithString("sector",
			mcp.Description("Sector filter, e.g. technology, healthcare"),
		),
		mcp.WithString("market_cap",
			mcp.Description("Market cap bucket: mega, large, mid, small, micro"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum rows to return (default: 20, max: 100)"),
		),
	)
}

// createGetFundamentalsTool returns the get_fundamentals tool definition
func createGetFundamentalsTool() mcp.Tool {
	return mcp.NewTool("get_fundamentals",
		mcp.WithDescription("Get fundamental ratios and metrics for a ticker"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol, e.g. AAPL"),
		),
	)
}

// createGetInsiderActivityTool returns the get_insider_activity tool definition
func createGetInsiderActivityTool() mcp.Tool {
	return mcp.NewTool("get_insider_activity",
		mcp.WithDescription("Get recent insider transactions for a ticker"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol"),
		),
	)
}

// createGetStockNewsTool returns the get_stock_news tool definition
func createGetStockNewsTool() mcp.Tool {
	return mcp.NewTool("get_stock_news",
		mcp.WithDescription("Get recent news headlines for a ticker"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum headlines to return (default: 10)"),
		),
	)
}

// createAnalyzeInsiderSentimentTool returns the analyze_insider_sentiment tool definition
func createAnalyzeInsiderSentimentTool() mcp.Tool {
	return mcp.NewTool("analyze_insider_sentiment",
		mcp.WithDescription("Classify insider buy/sell sentiment over a rolling window"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol"),
		),
		mcp.WithNumber("analysis_period",
			mcp.Description("Window in days (default: 90)"),
		),
		mcp.WithNumber("min_transaction_value",
			mcp.Description("Minimum absolute transaction value in dollars (default: 50000)"),
		),
	)
}

// createAnalyzeFinancialHealthTool returns the analyze_financial_health tool definition
func createAnalyzeFinancialHealthTool() mcp.Tool {
	return mcp.NewTool("analyze_financial_health",
		mcp.WithDescription("Compute a weighted 0-100 financial health score from fundamentals"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol"),
		),
		mcp.WithNumber("profitability_weight",
			mcp.Description("Weight for the profitability component (default: 0.30)"),
		),
		mcp.WithNumber("liquidity_weight",
			mcp.Description("Weight for the liquidity component (default: 0.20)"),
		),
		mcp.WithNumber("leverage_weight",
			mcp.Description("Weight for the leverage component (default: 0.20)"),
		),
		mcp.WithNumber("efficiency_weight",
			mcp.Description("Weight for the efficiency component (default: 0.15)"),
		),
		mcp.WithNumber("growth_weight",
			mcp.Description("Weight for the growth component (default: 0.15)"),
		),
	)
}

// createGetPutCallRatioTool returns the get_put_call_ratio tool definition
func createGetPutCallRatioTool() mcp.Tool {
	return mcp.NewTool("get_put_call_ratio",
		mcp.WithDescription("Get put/call ratios and options sentiment for a ticker"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol"),
		),
	)
}

// createComprehensiveAnalysisTool returns the comprehensive_analysis tool definition
func createComprehensiveAnalysisTool() mcp.Tool {
	return mcp.NewTool("comprehensive_analysis",
		mcp.WithDescription("Aggregate fundamentals, health score, insider sentiment and put/call ratios; sections fail independently"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol"),
		),
	)
}

// createSocialSentimentTool returns the get_social_sentiment tool definition
func createSocialSentimentTool() mcp.Tool {
	return mcp.NewTool("get_social_sentiment",
		mcp.WithDescription("Search subreddit discussion for a ticker and tally sentiment keywords"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol"),
		),
		mcp.WithString("subreddits",
			mcp.Description("Comma-separated subreddits to search (default: stocks)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum posts to return (default: 25)"),
		),
	)
}

// createSummarizeSentimentTool returns the summarize_sentiment tool definition
func createSummarizeSentimentTool() mcp.Tool {
	return mcp.NewTool("summarize_sentiment",
		mcp.WithDescription("Summarize free-form market context into structured sentiment via the LLM"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Stock ticker symbol"),
		),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("Free-form context text: headlines, discussion excerpts, metrics"),
		),
	)
}
