package personas

import "github.com/shopspring/decimal"

var engagementWeight = decimal.NewFromFloat(0.1)

// InfluenceScore computes the bounded influence score for one author
// group: ten points per post plus a tenth of a point per engagement
// interaction, capped so downstream comparisons stay bounded. The sum
// is carried in decimals so engagement counts in the millions don't
// lose precision before the cap applies.
func InfluenceScore(group []SentimentEvent, cap float64) float64 {
	base := decimal.NewFromInt(int64(len(group)) * 10)

	var engagement int64
	for _, ev := range group {
		engagement += int64(ev.Engagement.Total())
	}
	bonus := decimal.NewFromInt(engagement).Mul(engagementWeight)

	score := base.Add(bonus)
	limit := decimal.NewFromFloat(cap)
	if score.GreaterThan(limit) {
		score = limit
	}

	return score.InexactFloat64()
}
