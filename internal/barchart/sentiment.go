package barchart

import "fmt"

// Volume ratio thresholds for the headline classification.
const (
	bearishVolumeRatio = 1.2
	bullishVolumeRatio = 0.8
)

// Open interest ratio thresholds for the positioning insights.
const (
	hedgingOIRatio  = 1.5
	bullishOIRatio  = 0.5
	trendRowsNeeded = 3
)

// classifySentiment derives the headline sentiment and insight strings
// from the consolidated ratios. Open-interest insights only fire on a
// positive ratio so absent data stays silent.
func classifySentiment(analysis *Analysis) (string, []string) {
	var insights []string
	sentiment := SentimentNeutral

	// A zero ratio is bullish when call volume exists (no put buyers
	// at all), but meaningless when there is no volume data.
	volumeRatio := analysis.PutCallVolumeRatio
	switch {
	case volumeRatio > bearishVolumeRatio:
		sentiment = SentimentBearish
		insights = append(insights, fmt.Sprintf(
			"Put/call volume ratio of %.2f indicates bearish sentiment: put buyers outnumber call buyers", volumeRatio))
	case analysis.TotalCallVolume > 0 && volumeRatio < bullishVolumeRatio:
		sentiment = SentimentBullish
		insights = append(insights, fmt.Sprintf(
			"Put/call volume ratio of %.2f indicates bullish sentiment: call buyers outnumber put buyers", volumeRatio))
	default:
		insights = append(insights, fmt.Sprintf(
			"Put/call volume ratio of %.2f is in the neutral band", volumeRatio))
	}

	oiRatio := analysis.PutCallOIRatio
	if oiRatio > hedgingOIRatio {
		insights = append(insights, fmt.Sprintf(
			"High put/call open interest ratio of %.2f suggests significant hedging activity", oiRatio))
	} else if oiRatio > 0 && oiRatio < bullishOIRatio {
		insights = append(insights, fmt.Sprintf(
			"Low put/call open interest ratio of %.2f suggests bullish positioning", oiRatio))
	}

	if insight := trendInsight(analysis.Expirations); insight != "" {
		insights = append(insights, insight)
	}

	return sentiment, insights
}

// trendInsight inspects the three nearest-dated expirations' volume
// ratios. A strictly monotonic run reads as a near-term shift; anything
// else stays silent.
func trendInsight(expirations []ExpirationRatio) string {
	if len(expirations) < trendRowsNeeded {
		return ""
	}

	r0 := expirations[0].PutCallVolumeRatio
	r1 := expirations[1].PutCallVolumeRatio
	r2 := expirations[2].PutCallVolumeRatio

	if r0 < r1 && r1 < r2 {
		return "Put/call ratio increasing across near-term expirations: growing caution"
	}
	if r0 > r1 && r1 > r2 {
		return "Put/call ratio decreasing across near-term expirations: improving sentiment"
	}
	return ""
}
