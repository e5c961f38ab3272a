package signals

import (
	"math"
	"sort"

	"SmartMoney/internal/domain/models"
)

// Rank sorts in place by strength, then confidence, then absolute score,
// all descending.
func Rank(s []models.TradingSignal) {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if ra, rb := a.SignalStrength.Rank(), b.SignalStrength.Rank(); ra != rb {
			return ra > rb
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return math.Abs(a.Score) > math.Abs(b.Score)
	})
}

// Summarize aggregates a signal set. Bias is BULLISH only when buys strictly
// outnumber sells.
func Summarize(s []models.TradingSignal) models.MarketSummary {
	sum := models.MarketSummary{TotalSignals: len(s), MarketBias: models.BiasBearish}
	var conf float64
	for _, sig := range s {
		switch sig.SignalType {
		case models.SignalBuy:
			sum.BuySignals++
		case models.SignalSell:
			sum.SellSignals++
		}
		if sig.SignalStrength == models.StrengthStrong {
			sum.StrongSignals++
		}
		conf += sig.Confidence
	}
	if len(s) > 0 {
		sum.AverageConfidence = int(math.Round(conf / float64(len(s))))
	}
	if sum.BuySignals > sum.SellSignals {
		sum.MarketBias = models.BiasBullish
	}
	return sum
}
