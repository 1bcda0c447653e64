package scoring

import (
	"fmt"
	"math"

	"github.com/ternarybob/speculor/internal/parse"
)

// CalculateHealthScore computes the weighted financial health score
// from snapshot metric strings. Absent metrics score a neutral 50 for
// their component. Weights are applied as given; see Weights.
func CalculateHealthScore(ticker string, inputs HealthInputs, weights Weights) HealthScore {
	profitability := scoreProfitability(inputs.ProfitMargin, inputs.ROE)
	liquidity := scoreLiquidity(inputs.CurrentRatio)
	leverage := scoreLeverage(inputs.DebtToEquity)
	efficiency := scoreEfficiency(inputs.PE)
	growth := scoreGrowth(inputs.EPSGrowth)

	weighted := profitability.Score*weights.Profitability +
		liquidity.Score*weights.Liquidity +
		leverage.Score*weights.Leverage +
		efficiency.Score*weights.Efficiency +
		growth.Score*weights.Growth

	overall := int(math.Round(weighted))

	return HealthScore{
		Ticker:        ticker,
		Profitability: profitability,
		Liquidity:     liquidity,
		Leverage:      leverage,
		Efficiency:    efficiency,
		Growth:        growth,
		Overall:       overall,
		Rating:        ratingForScore(overall),
		Weights:       weights,
	}
}

// ratingForScore maps the overall score to its categorical band.
func ratingForScore(score int) string {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 70:
		return RatingGood
	case score >= 60:
		return RatingFair
	case score >= 40:
		return RatingBelowAverage
	default:
		return RatingPoor
	}
}

// present reports whether a metric display string carries a value.
func present(text string) bool {
	return text != "" && text != "-" && text != "N/A"
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// scoreProfitability starts from profit margin, then averages in an
// ROE-based score when ROE is also present.
func scoreProfitability(profitMargin, roe string) ComponentScore {
	if !present(profitMargin) {
		return ComponentScore{Score: 50, Interpretation: "Profit margin unavailable"}
	}

	margin := parse.Number(profitMargin)
	score := clamp(50 + margin*2)
	interpretation := fmt.Sprintf("Profit margin of %.1f%%", margin)

	if present(roe) {
		roePct := parse.Number(roe)
		roeScore := clamp(50 + roePct*3)
		score = (score + roeScore) / 2
		interpretation = fmt.Sprintf("Profit margin of %.1f%% with ROE of %.1f%%", margin, roePct)
	}

	return ComponentScore{Score: score, Interpretation: interpretation}
}

// scoreLiquidity rates the current ratio. The sweet spot is 1.5-3;
// above 3 reads as idle capital, below 1 as strain.
func scoreLiquidity(currentRatio string) ComponentScore {
	if !present(currentRatio) {
		return ComponentScore{Score: 50, Interpretation: "Current ratio unavailable"}
	}

	ratio := parse.Number(currentRatio)
	var score float64
	var interpretation string
	switch {
	case ratio >= 1.5 && ratio <= 3:
		score, interpretation = 90, "Healthy current ratio"
	case ratio >= 1 && ratio < 1.5:
		score, interpretation = 70, "Adequate current ratio"
	case ratio > 3:
		score, interpretation = 60, "High current ratio, possibly idle capital"
	default:
		score, interpretation = 20, "Current ratio below 1 indicates liquidity strain"
	}

	return ComponentScore{Score: score, Interpretation: fmt.Sprintf("%s (%.2f)", interpretation, ratio)}
}

// scoreLeverage rates debt/equity, sliding below 50 once leverage
// exceeds 1x equity.
func scoreLeverage(debtToEquity string) ComponentScore {
	if !present(debtToEquity) {
		return ComponentScore{Score: 50, Interpretation: "Debt/equity unavailable"}
	}

	ratio := parse.Number(debtToEquity)
	var score float64
	var interpretation string
	switch {
	case ratio <= 0.3:
		score, interpretation = 90, "Very low leverage"
	case ratio <= 0.6:
		score, interpretation = 70, "Moderate leverage"
	case ratio <= 1.0:
		score, interpretation = 50, "Elevated leverage"
	default:
		score = math.Max(10, 50-(ratio-1)*20)
		interpretation = "High leverage"
	}

	return ComponentScore{Score: score, Interpretation: fmt.Sprintf("%s (D/E %.2f)", interpretation, ratio)}
}

// scoreEfficiency rates valuation via P/E. The 10-20 band scores best;
// extremes on either side are penalized.
func scoreEfficiency(pe string) ComponentScore {
	if !present(pe) {
		return ComponentScore{Score: 50, Interpretation: "P/E unavailable"}
	}

	ratio := parse.Number(pe)
	if ratio <= 0 {
		return ComponentScore{Score: 50, Interpretation: "P/E not meaningful (non-positive)"}
	}

	var score float64
	var interpretation string
	switch {
	case ratio >= 10 && ratio <= 20:
		score, interpretation = 80, "P/E in a reasonable range"
	case ratio >= 5 && ratio < 10:
		score, interpretation = 70, "Low P/E, potentially undervalued"
	case ratio > 20 && ratio <= 30:
		score, interpretation = 60, "Somewhat elevated P/E"
	case ratio > 30:
		score = math.Max(20, 60-(ratio-30))
		interpretation = "High P/E, priced for growth"
	default: // 0 < ratio < 5
		score, interpretation = 30, "Very low P/E, possible distress"
	}

	return ComponentScore{Score: score, Interpretation: fmt.Sprintf("%s (%.1f)", interpretation, ratio)}
}

// scoreGrowth rates EPS growth percentage, centered at 50.
func scoreGrowth(epsGrowth string) ComponentScore {
	if !present(epsGrowth) {
		return ComponentScore{Score: 50, Interpretation: "EPS growth unavailable"}
	}

	pct := parse.Number(epsGrowth)
	return ComponentScore{
		Score:          clamp(50 + pct),
		Interpretation: fmt.Sprintf("EPS growth of %.1f%%", pct),
	}
}
