// Package analysis aggregates the individual data sources into a
// combined per-ticker report. Sub-requests run concurrently; a failed
// section records its error string and never aborts the others.
package analysis

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculor/internal/barchart"
	"github.com/ternarybob/speculor/internal/finviz"
	"github.com/ternarybob/speculor/internal/parse"
	"github.com/ternarybob/speculor/internal/scoring"
)

// MarketSource provides quote-page data.
type MarketSource interface {
	Fundamentals(ctx context.Context, ticker string) (*finviz.FundamentalMetrics, error)
	InsiderActivity(ctx context.Context, ticker string) ([]finviz.InsiderTransaction, error)
}

// OptionsSource provides put/call ratio data.
type OptionsSource interface {
	PutCallRatio(ctx context.Context, ticker string) (*barchart.Analysis, error)
}

// Report is the combined analysis for one ticker. Sections that failed
// are nil with an entry in Errors keyed by section name.
type Report struct {
	Ticker           string                    `json:"ticker"`
	Fundamentals     *finviz.FundamentalMetrics `json:"fundamentals,omitempty"`
	HealthScore      *scoring.HealthScore      `json:"health_score,omitempty"`
	InsiderSentiment *scoring.InsiderSentiment `json:"insider_sentiment,omitempty"`
	PutCallRatio     *barchart.Analysis        `json:"put_call_ratio,omitempty"`
	Errors           map[string]string         `json:"errors,omitempty"`
}

// Service runs comprehensive analyses.
type Service struct {
	market  MarketSource
	options OptionsSource
	logger  arbor.ILogger
}

// NewService creates the aggregation service.
func NewService(market MarketSource, options OptionsSource, logger arbor.ILogger) *Service {
	return &Service{
		market:  market,
		options: options,
		logger:  logger,
	}
}

// Comprehensive fans out the section fetches concurrently and always
// returns a report; failures surface per-section.
func (s *Service) Comprehensive(ctx context.Context, ticker string) *Report {
	report := &Report{
		Ticker: ticker,
		Errors: make(map[string]string),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(section string, err error) {
		mu.Lock()
		report.Errors[section] = err.Error()
		mu.Unlock()
		if s.logger != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Str("section", section).Msg("analysis section failed")
		}
	}

	wg.Add(3)

	go func() {
		defer wg.Done()
		metrics, err := s.market.Fundamentals(ctx, ticker)
		if err != nil {
			fail("fundamentals", err)
			return
		}
		health := scoring.CalculateHealthScore(ticker, HealthInputsFromMetrics(metrics), scoring.DefaultWeights())
		mu.Lock()
		report.Fundamentals = metrics
		report.HealthScore = &health
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		transactions, err := s.market.InsiderActivity(ctx, ticker)
		if err != nil {
			fail("insider_sentiment", err)
			return
		}
		sentiment := scoring.CalculateInsiderSentiment(ticker, ToTransactions(transactions), scoring.InsiderOptions{})
		mu.Lock()
		report.InsiderSentiment = &sentiment
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		putCall, err := s.options.PutCallRatio(ctx, ticker)
		if err != nil {
			fail("put_call_ratio", err)
			return
		}
		mu.Lock()
		report.PutCallRatio = putCall
		mu.Unlock()
	}()

	wg.Wait()

	if len(report.Errors) == 0 {
		report.Errors = nil
	}
	return report
}

// HealthInputsFromMetrics maps scraped snapshot strings onto scoring
// inputs.
func HealthInputsFromMetrics(metrics *finviz.FundamentalMetrics) scoring.HealthInputs {
	return scoring.HealthInputs{
		ProfitMargin: metrics.ProfitMargin,
		ROE:          metrics.ROE,
		CurrentRatio: metrics.CurrentRatio,
		DebtToEquity: metrics.DebtToEquity,
		PE:           metrics.PE,
		EPSGrowth:    metrics.EPSGrowthNextY,
	}
}

// ToTransactions converts scraped insider rows into calculation-ready
// transactions. Display strings go through the loose parsers; rows with
// unparseable dates get the epoch sentinel and drop out of any window.
func ToTransactions(rows []finviz.InsiderTransaction) []scoring.Transaction {
	transactions := make([]scoring.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, scoring.Transaction{
			Insider:      row.Insider,
			Relationship: row.Relationship,
			Date:         parse.TransactionDate(row.Date),
			Type:         row.Transaction,
			Value:        parse.TransactionValue(row.Value),
		})
	}
	return transactions
}
