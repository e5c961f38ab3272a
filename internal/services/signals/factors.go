package signals

import (
	"math"
	"strings"

	"SmartMoney/internal/domain/models"
)

// Factor weights. They sum to 1.0.
const (
	WeightOptionFlow = 0.40
	WeightMomentum   = 0.25
	WeightVolume     = 0.15
	WeightTechnical  = 0.15
	WeightRisk       = 0.05
)

const (
	lowPCR                 = 0.6
	highPCR                = 1.4
	institutionalFlowLimit = 50.0
	momentumFlowLimit      = 60.0
	highBuildup            = 5e7
	veryHighBuildup        = 1e8
	heavyActivityMin       = 5
	strongSignalsMin       = 2
	nearLevelPct           = 0.02
	maxPainDistancePct     = 2.0
)

// FactorResult is the immutable output of a single scorer.
type FactorResult struct {
	Score      float64
	Confidence float64
	Alerts     []string
}

func (r *FactorResult) add(score, confidence float64, alert string) {
	r.Score += score
	r.Confidence += confidence
	if alert != "" {
		r.Alerts = append(r.Alerts, alert)
	}
}

// Scorer is a weighted factor evaluated against one snapshot.
type Scorer struct {
	Name   string
	Weight float64
	Score  func(a models.OptionAnalysis) FactorResult
}

// DefaultScorers returns the five factors in their canonical order.
func DefaultScorers() []Scorer {
	return []Scorer{
		{Name: "option_flow_score", Weight: WeightOptionFlow, Score: ScoreOptionFlow},
		{Name: "momentum_score", Weight: WeightMomentum, Score: ScoreMomentum},
		{Name: "volume_score", Weight: WeightVolume, Score: ScoreVolume},
		{Name: "technical_score", Weight: WeightTechnical, Score: ScoreTechnical},
		{Name: "risk_score", Weight: WeightRisk, Score: ScoreRisk},
	}
}

// ScoreOptionFlow rates put/call positioning and institutional flow.
func ScoreOptionFlow(a models.OptionAnalysis) FactorResult {
	r := FactorResult{Score: a.Score * 0.3}

	switch {
	case a.OverallPCR < lowPCR:
		r.add(25, 15, "VERY_LOW_PCR_BULLISH")
	case a.OverallPCR > highPCR:
		r.add(-25, 15, "HIGH_PCR_BEARISH")
	}

	if math.Abs(a.NetInstitutionalFlow) > institutionalFlowLimit {
		if a.NetInstitutionalFlow > 0 {
			r.add(20, 20, "STRONG_INSTITUTIONAL_BUYING")
		} else {
			r.add(-20, 20, "STRONG_INSTITUTIONAL_SELLING")
		}
	}

	if math.Abs(a.NetCallBuildup)+math.Abs(a.NetPutBuildup) > highBuildup {
		r.add(0, 15, "HIGH_VOLUME_ACTIVITY")
	}
	return r
}

// ScoreMomentum rates the institutional flow imbalance and strength tags.
func ScoreMomentum(a models.OptionAnalysis) FactorResult {
	var r FactorResult

	flowDiff := a.InstitutionalBullishFlow - a.InstitutionalBearishFlow
	if math.Abs(flowDiff) > momentumFlowLimit {
		if flowDiff > 0 {
			r.add(30, 25, "STRONG_BULLISH_MOMENTUM")
		} else {
			r.add(-30, 25, "STRONG_BEARISH_MOMENTUM")
		}
	}

	if countContaining(a.StrengthSignals, "STRONG") >= strongSignalsMin {
		r.add(sign(a.Score)*20, 15, "MULTIPLE_STRENGTH_SIGNALS")
	}
	return r
}

// ScoreVolume rates buildup size and heavy unusual activity. It raises no alerts.
func ScoreVolume(a models.OptionAnalysis) FactorResult {
	var r FactorResult

	total := math.Abs(a.NetCallBuildup) + math.Abs(a.NetPutBuildup)
	switch {
	case total > veryHighBuildup:
		r.add(15, 10, "")
	case total > highBuildup:
		r.add(10, 5, "")
	}

	if countContaining(a.UnusualActivity, "Heavy") >= heavyActivityMin {
		r.add(10, 10, "")
	}
	return r
}

// ScoreTechnical rates price against max pain and the nearest support and resistance.
// Scorers are exported for use outside Engine, so a non-positive price is
// scored neutral here rather than left to Engine's validation.
func ScoreTechnical(a models.OptionAnalysis) FactorResult {
	var r FactorResult
	price := a.CurrentPrice
	if price <= 0 {
		return r
	}

	if math.Abs(a.MaxPain-price)/price*100 > maxPainDistancePct {
		if a.MaxPain > price {
			r.add(15, 10, "MAX_PAIN_UPSIDE_TARGET")
		} else {
			r.add(-15, 10, "MAX_PAIN_DOWNSIDE_RISK")
		}
	}

	if nearestDistance(a.SupportLevels, price) < price*nearLevelPct {
		r.add(10, 8, "NEAR_STRONG_SUPPORT")
	}
	if nearestDistance(a.ResistanceLevels, price) < price*nearLevelPct {
		r.add(-8, 5, "NEAR_RESISTANCE")
	}
	return r
}

// ScoreRisk adjusts for the known volatility class of the symbol.
func ScoreRisk(a models.OptionAnalysis) FactorResult {
	var r FactorResult
	switch VolatilityOf(a.Symbol) {
	case VolatilityHigh:
		r.add(-5, 0, "HIGH_VOLATILITY_STOCK")
	case VolatilityLow:
		r.add(5, 5, "LOW_VOLATILITY_STOCK")
	}
	return r
}

func countContaining(tags []string, substr string) int {
	n := 0
	for _, t := range tags {
		if strings.Contains(t, substr) {
			n++
		}
	}
	return n
}

// nearestDistance returns +Inf for an empty level list.
func nearestDistance(levels []float64, price float64) float64 {
	best := math.Inf(1)
	for _, l := range levels {
		if d := math.Abs(l - price); d < best {
			best = d
		}
	}
	return best
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
