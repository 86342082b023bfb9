package personas

import "math"

// DetectTrend labels the direction of sentiment change within one
// author group. The group must be ordered most-recent-first: the recent
// half is the first ⌊n/2⌋ events, the older half is the remainder.
// Groups below minPosts carry too little signal and are stable by
// definition; differences inside the stability band are noise.
// Unscored events count as 0 in each half's mean.
func DetectTrend(group []SentimentEvent, minPosts int, stabilityBand float64) Trend {
	if len(group) < minPosts {
		return TrendStable
	}

	half := len(group) / 2
	recentAvg := meanScore(group[:half])
	olderAvg := meanScore(group[half:])

	difference := recentAvg - olderAvg
	if math.Abs(difference) < stabilityBand {
		return TrendStable
	}
	if difference > 0 {
		return TrendEscalating
	}
	return TrendDeclining
}

func meanScore(events []SentimentEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	var sum float64
	for _, ev := range events {
		if ev.SentimentScore != nil {
			sum += *ev.SentimentScore
		}
	}
	return sum / float64(len(events))
}
