package signals

import (
	"math"

	"SmartMoney/internal/domain/models"

	"github.com/shopspring/decimal"
)

// TradeLevels are the entry, targets and stop for a signal.
type TradeLevels struct {
	Entry           float64
	Target1         float64
	Target2         float64
	StopLoss        float64
	RiskRewardRatio float64
}

// CalculateLevels derives trade levels from price structure. A zero or
// non-finite level counts as missing and falls through to the next candidate.
func CalculateLevels(a models.OptionAnalysis, t models.SignalType) TradeLevels {
	p := a.CurrentPrice
	lv := TradeLevels{Entry: p, Target1: p, Target2: p, StopLoss: p}

	switch t {
	case models.SignalBuy:
		lv.Target1 = firstNonZero(levelAt(a.ResistanceLevels, 0), p*1.02)
		lv.Target2 = firstNonZero(levelAt(a.ResistanceLevels, 1), a.MaxPain, p*1.05)
		lv.StopLoss = firstNonZero(levelAt(a.SupportLevels, 0), p*0.98)
	case models.SignalSell:
		lv.Target1 = firstNonZero(levelAt(a.SupportLevels, 0), p*0.98)
		lv.Target2 = firstNonZero(levelAt(a.SupportLevels, 1), a.MaxPain, p*0.95)
		lv.StopLoss = firstNonZero(levelAt(a.ResistanceLevels, 0), p*1.02)
	}

	lv.RiskRewardRatio = RiskReward(lv.Entry, lv.Target1, lv.StopLoss)
	return lv
}

// RiskReward returns |target-entry| / |entry-stop| rounded to 2 decimals,
// or 0 when there is no risk or any input is not finite.
func RiskReward(entry, target, stop float64) float64 {
	if !finite(entry) || !finite(target) || !finite(stop) {
		return 0
	}
	risk := decimal.NewFromFloat(entry).Sub(decimal.NewFromFloat(stop)).Abs()
	if !risk.IsPositive() {
		return 0
	}
	reward := decimal.NewFromFloat(target).Sub(decimal.NewFromFloat(entry)).Abs()
	ratio, _ := reward.DivRound(risk, 8).Round(2).Float64()
	return ratio
}

func levelAt(levels []float64, i int) float64 {
	if i < len(levels) {
		return levels[i]
	}
	return 0
}

func firstNonZero(vs ...float64) float64 {
	for _, v := range vs {
		if v != 0 && finite(v) {
			return v
		}
	}
	return 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
