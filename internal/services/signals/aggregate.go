package signals

import (
	"math"

	"SmartMoney/internal/domain/models"
)

const baseConfidence = 50.0

// Aggregate is the weighted combination of all factor results.
type Aggregate struct {
	Score         float64
	Confidence    float64
	RawConfidence float64
	Factors       models.Factors
	Alerts        []string
}

// Combine weights every factor score into a total and accumulates confidence
// from the base of 50 before clamping it to [0,100].
func Combine(a models.OptionAnalysis, scorers []Scorer) Aggregate {
	agg := Aggregate{RawConfidence: baseConfidence}
	alerts := make([]string, 0, 8)

	for _, s := range scorers {
		res := s.Score(a)
		agg.Score += res.Score * s.Weight
		agg.RawConfidence += res.Confidence
		setFactor(&agg.Factors, s.Name, res.Score)
		for _, alert := range res.Alerts {
			if alert != "" {
				alerts = append(alerts, alert)
			}
		}
	}

	agg.Confidence = ClampConfidence(agg.RawConfidence)
	agg.Alerts = alerts
	return agg
}

// ClampConfidence bounds v to [0,100].
func ClampConfidence(v float64) float64 {
	return math.Min(math.Max(v, 0), 100)
}

func setFactor(f *models.Factors, name string, v float64) {
	switch name {
	case "option_flow_score":
		f.OptionFlow = v
	case "momentum_score":
		f.Momentum = v
	case "volume_score":
		f.Volume = v
	case "technical_score":
		f.Technical = v
	case "risk_score":
		f.Risk = v
	}
}

// Outcome is what a decision rule resolves to.
type Outcome struct {
	Type      models.SignalType
	Strength  models.Strength
	Timeframe models.Timeframe
}

// Rule maps a (score, confidence) region to an outcome.
type Rule struct {
	Name    string
	Match   func(score, confidence float64) bool
	Outcome Outcome
}

// HoldOutcome is returned when no rule matches.
var HoldOutcome = Outcome{Type: models.SignalHold, Strength: models.StrengthWeak, Timeframe: models.TimeframeIntraday}

// DecisionTable is evaluated top-down; the first match wins.
var DecisionTable = []Rule{
	{
		Name:    "strong_buy",
		Match:   func(s, c float64) bool { return s > 60 && c > 80 },
		Outcome: Outcome{models.SignalBuy, models.StrengthStrong, models.TimeframeSwing},
	},
	{
		Name:    "moderate_buy",
		Match:   func(s, c float64) bool { return s > 40 && c > 70 },
		Outcome: Outcome{models.SignalBuy, models.StrengthModerate, models.TimeframeIntraday},
	},
	{
		Name:    "weak_buy",
		Match:   func(s, c float64) bool { return s > 20 && c > 60 },
		Outcome: Outcome{models.SignalBuy, models.StrengthWeak, models.TimeframeIntraday},
	},
	{
		Name:    "strong_sell",
		Match:   func(s, c float64) bool { return s < -60 && c > 80 },
		Outcome: Outcome{models.SignalSell, models.StrengthStrong, models.TimeframeSwing},
	},
	{
		Name:    "moderate_sell",
		Match:   func(s, c float64) bool { return s < -40 && c > 70 },
		Outcome: Outcome{models.SignalSell, models.StrengthModerate, models.TimeframeIntraday},
	},
	{
		Name:    "weak_sell",
		Match:   func(s, c float64) bool { return s < -20 && c > 60 },
		Outcome: Outcome{models.SignalSell, models.StrengthWeak, models.TimeframeIntraday},
	},
	{
		Name:    "avoid",
		Match:   func(_, c float64) bool { return c < 50 },
		Outcome: Outcome{models.SignalAvoid, models.StrengthWeak, models.TimeframeIntraday},
	},
}

// Decide resolves (score, confidence) against DecisionTable.
func Decide(score, confidence float64) Outcome {
	for _, r := range DecisionTable {
		if r.Match(score, confidence) {
			return r.Outcome
		}
	}
	return HoldOutcome
}
