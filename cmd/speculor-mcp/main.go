package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ternarybob/speculor/internal/analysis"
	"github.com/ternarybob/speculor/internal/barchart"
	"github.com/ternarybob/speculor/internal/common"
	"github.com/ternarybob/speculor/internal/finviz"
	"github.com/ternarybob/speculor/internal/llm"
	"github.com/ternarybob/speculor/internal/reddit"
)

var showVersion = flag.Bool("version", false, "Print version information")

func main() {
	flag.Parse()

	if *showVersion {
		common.PrintBanner(common.GetFullVersion())
		return
	}

	// Load configuration
	configPath := os.Getenv("SPECULOR_CONFIG")
	if configPath == "" {
		configPath = "speculor.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The default config keeps this at warn/console so the stdio
	// protocol stream stays clean; file output is opt-in via config.
	logger := common.InitLogger(config)

	// Data source clients
	finvizClient := finviz.NewClient(config.Finviz, finviz.WithLogger(logger))
	barchartClient := barchart.NewClient(config.Barchart, barchart.WithLogger(logger))
	analysisService := analysis.NewService(finvizClient, barchartClient, logger)

	// Capability-gated adapters
	caps := config.Capabilities()

	var redditClient *reddit.Client
	if caps.SocialSentiment {
		redditClient = reddit.NewClient(config.Reddit, reddit.WithLogger(logger))
	}

	var summarizer *llm.Summarizer
	if caps.Summarize {
		summarizer, err = llm.NewSummarizer(config.Claude, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize summarizer")
		}
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"speculor",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register market data tools
	mcpServer.AddTool(createScreenStocksTool(), withRequestID("screen_stocks", logger, handleScreenStocks(finvizClient, logger)))
	mcpServer.AddTool(createGetFundamentalsTool(), withRequestID("get_fundamentals", logger, handleGetFundamentals(finvizClient, logger)))
	mcpServer.AddTool(createGetInsiderActivityTool(), withRequestID("get_insider_activity", logger, handleGetInsiderActivity(finvizClient, logger)))
	mcpServer.AddTool(createGetStockNewsTool(), withRequestID("get_stock_news", logger, handleGetStockNews(finvizClient, logger)))

	// Register analysis tools
	mcpServer.AddTool(createAnalyzeInsiderSentimentTool(), withRequestID("analyze_insider_sentiment", logger, handleAnalyzeInsiderSentiment(finvizClient, logger)))
	mcpServer.AddTool(createAnalyzeFinancialHealthTool(), withRequestID("analyze_financial_health", logger, handleAnalyzeFinancialHealth(finvizClient, logger)))
	mcpServer.AddTool(createGetPutCallRatioTool(), withRequestID("get_put_call_ratio", logger, handleGetPutCallRatio(barchartClient, logger)))
	mcpServer.AddTool(createComprehensiveAnalysisTool(), withRequestID("comprehensive_analysis", logger, handleComprehensiveAnalysis(analysisService, logger)))

	// Register capability-gated tools
	if redditClient != nil {
		mcpServer.AddTool(createSocialSentimentTool(), withRequestID("get_social_sentiment", logger, handleSocialSentiment(redditClient, logger)))
	}
	if summarizer != nil {
		mcpServer.AddTool(createSummarizeSentimentTool(), withRequestID("summarize_sentiment", logger, handleSummarizeSentiment(summarizer, logger)))
	}

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
