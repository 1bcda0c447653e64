// Package llm adapts the generative-text API for sentiment
// summarization. Responses are decoded as JSON-with-fallback: text
// without a parseable JSON object yields a fixed default summary
// rather than an error.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculor/internal/common"
)

const systemPrompt = `You are a financial sentiment analyst. Given market and social
discussion context for a stock ticker, respond with ONLY a JSON object of the shape
{"sentiment": "bullish|bearish|neutral", "confidence": "high|medium|low", "key_points": ["..."]}.
No prose outside the JSON.`

// Summary is the structured sentiment result.
type Summary struct {
	Sentiment  string   `json:"sentiment"`
	Confidence string   `json:"confidence"`
	KeyPoints  []string `json:"key_points"`
}

// fallbackSummary is substituted when the model's text contains no
// parseable JSON object.
func fallbackSummary() Summary {
	return Summary{
		Sentiment:  "neutral",
		Confidence: "low",
		KeyPoints:  []string{"Model response could not be parsed; no structured summary available"},
	}
}

// Summarizer calls the generative-text API with a fixed model and
// prompt pair.
type Summarizer struct {
	client      anthropic.Client
	logger      arbor.ILogger
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewSummarizer creates the adapter from configuration. The API key is
// required; callers gate on Capabilities before constructing one.
func NewSummarizer(config common.ClaudeConfig, logger arbor.ILogger) (*Summarizer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for the summarizer")
	}

	model := config.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	timeout := 15 * time.Second
	if config.Timeout != "" {
		if d, err := time.ParseDuration(config.Timeout); err == nil {
			timeout = d
		}
	}

	return &Summarizer{
		client:      anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		logger:      logger,
		model:       model,
		maxTokens:   maxTokens,
		temperature: config.Temperature,
		timeout:     timeout,
	}, nil
}

// Summarize asks the model for a sentiment summary of the given context
// text. API errors propagate; unparseable responses do not.
func (s *Summarizer) Summarize(ctx context.Context, ticker, contextText string) (Summary, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	userPrompt := fmt.Sprintf("Ticker: %s\n\nContext:\n%s", ticker, contextText)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if s.temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.temperature))
	}

	resp, err := s.client.Messages.New(timeoutCtx, params)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize for %s failed: %w", ticker, err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	summary := DecodeSummary(text.String())
	if s.logger != nil {
		s.logger.Debug().
			Str("ticker", ticker).
			Str("sentiment", summary.Sentiment).
			Msg("sentiment summary generated")
	}

	return summary, nil
}

// DecodeSummary extracts the first JSON object from model text and
// decodes it, substituting the fixed fallback when none parses. The
// model shape is never trusted: missing fields also fall back.
func DecodeSummary(text string) Summary {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fallbackSummary()
	}

	var summary Summary
	if err := json.Unmarshal([]byte(text[start:end+1]), &summary); err != nil {
		return fallbackSummary()
	}

	switch summary.Sentiment {
	case "bullish", "bearish", "neutral":
	default:
		return fallbackSummary()
	}
	switch summary.Confidence {
	case "high", "medium", "low":
	default:
		summary.Confidence = "low"
	}
	if len(summary.KeyPoints) == 0 {
		summary.KeyPoints = []string{"No key points provided"}
	}

	return summary
}
