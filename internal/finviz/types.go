// Package finviz scrapes quote and screener pages into structured
// records. Cell values are kept as display strings verbatim; no numeric
// coercion happens at this layer.
package finviz

// ScreeningRow is one row of screener results. Fields carry the table
// cells exactly as rendered.
type ScreeningRow struct {
	Ticker    string `json:"ticker"`
	Company   string `json:"company"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`
	Country   string `json:"country"`
	MarketCap string `json:"market_cap"`
	PE        string `json:"pe"`
	Price     string `json:"price"`
	Change    string `json:"change"`
	Volume    string `json:"volume"`
}

// FundamentalMetrics holds the snapshot-table ratios for one ticker.
// Each field is optional: an empty string means the label was absent
// from the page. Values keep their display formatting ("12.3%", "-").
type FundamentalMetrics struct {
	Ticker           string `json:"ticker"`
	PE               string `json:"pe,omitempty"`
	ForwardPE        string `json:"forward_pe,omitempty"`
	PEG              string `json:"peg,omitempty"`
	PriceToBook      string `json:"price_to_book,omitempty"`
	CurrentRatio     string `json:"current_ratio,omitempty"`
	DebtToEquity     string `json:"debt_to_equity,omitempty"`
	ROE              string `json:"roe,omitempty"`
	ProfitMargin     string `json:"profit_margin,omitempty"`
	InsiderOwnership string `json:"insider_ownership,omitempty"`
	ShortFloat       string `json:"short_float,omitempty"`
	MarketCap        string `json:"market_cap,omitempty"`
	EPSGrowthNextY   string `json:"eps_growth_next_y,omitempty"`
	EPSGrowthNext5Y  string `json:"eps_growth_next_5y,omitempty"`
	SalesGrowth5Y    string `json:"sales_growth_5y,omitempty"`
	RSI14            string `json:"rsi_14,omitempty"`
	SMA200           string `json:"sma_200,omitempty"`
	Price            string `json:"price,omitempty"`
	Profile          string `json:"profile,omitempty"`
}

// InsiderTransaction is one row of the insider-trading table.
type InsiderTransaction struct {
	Insider      string `json:"insider"`
	Relationship string `json:"relationship"`
	Date         string `json:"date"`
	Transaction  string `json:"transaction"`
	Cost         string `json:"cost"`
	Shares       string `json:"shares"`
	Value        string `json:"value"`
	SharesTotal  string `json:"shares_total"`
}

// NewsItem is one row of the quote-page news table.
type NewsItem struct {
	Date   string `json:"date"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source,omitempty"`
}
