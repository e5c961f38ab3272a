package signals

import (
	"math"
	"testing"

	"SmartMoney/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLevelsBuyFallbacks(t *testing.T) {
	lv := CalculateLevels(models.OptionAnalysis{CurrentPrice: 100}, models.SignalBuy)

	assert.Equal(t, 100.0, lv.Entry)
	assert.InDelta(t, 102.0, lv.Target1, 1e-9)
	assert.InDelta(t, 105.0, lv.Target2, 1e-9)
	assert.InDelta(t, 98.0, lv.StopLoss, 1e-9)
	assert.Equal(t, 1.0, lv.RiskRewardRatio)
}

func TestCalculateLevelsBuyFromStructure(t *testing.T) {
	lv := CalculateLevels(models.OptionAnalysis{
		CurrentPrice:     100,
		MaxPain:          108,
		SupportLevels:    []float64{97},
		ResistanceLevels: []float64{104},
	}, models.SignalBuy)

	assert.Equal(t, 104.0, lv.Target1)
	assert.Equal(t, 108.0, lv.Target2, "max pain fills missing second resistance")
	assert.Equal(t, 97.0, lv.StopLoss)
	assert.Equal(t, 1.33, lv.RiskRewardRatio)
}

func TestCalculateLevelsZeroLevelIsMissing(t *testing.T) {
	lv := CalculateLevels(models.OptionAnalysis{
		CurrentPrice:     200,
		SupportLevels:    []float64{0, 0},
		ResistanceLevels: []float64{0},
	}, models.SignalSell)

	assert.InDelta(t, 196.0, lv.Target1, 1e-9)
	assert.InDelta(t, 190.0, lv.Target2, 1e-9)
	assert.InDelta(t, 204.0, lv.StopLoss, 1e-9)
}

func TestCalculateLevelsSell(t *testing.T) {
	lv := CalculateLevels(models.OptionAnalysis{
		CurrentPrice:     100,
		SupportLevels:    []float64{95, 90},
		ResistanceLevels: []float64{102},
	}, models.SignalSell)

	assert.Equal(t, 95.0, lv.Target1)
	assert.Equal(t, 90.0, lv.Target2)
	assert.Equal(t, 102.0, lv.StopLoss)
	assert.Equal(t, 2.5, lv.RiskRewardRatio)
}

func TestCalculateLevelsHoldAndAvoid(t *testing.T) {
	in := models.OptionAnalysis{CurrentPrice: 321, SupportLevels: []float64{300}, ResistanceLevels: []float64{340}}
	for _, st := range []models.SignalType{models.SignalHold, models.SignalAvoid} {
		lv := CalculateLevels(in, st)
		assert.Equal(t, TradeLevels{Entry: 321, Target1: 321, Target2: 321, StopLoss: 321}, lv)
	}
}

func TestRiskReward(t *testing.T) {
	assert.Zero(t, RiskReward(100, 110, 100))
	assert.Equal(t, 0.67, RiskReward(100, 102, 97))
	assert.Equal(t, 3.0, RiskReward(50, 44, 52))
	assert.GreaterOrEqual(t, RiskReward(10, 5, 20), 0.0)
	assert.Zero(t, RiskReward(100, math.NaN(), 97))
	assert.Zero(t, RiskReward(100, 102, math.Inf(-1)))
}

func TestCalculateLevelsNonFiniteIsMissing(t *testing.T) {
	in := models.OptionAnalysis{
		CurrentPrice:     200,
		MaxPain:          math.Inf(1),
		SupportLevels:    []float64{math.NaN()},
		ResistanceLevels: []float64{math.Inf(1), math.NaN()},
	}
	lv := CalculateLevels(in, models.SignalBuy)
	assert.InDelta(t, 204, lv.Target1, 1e-9)
	assert.InDelta(t, 210, lv.Target2, 1e-9)
	assert.InDelta(t, 196, lv.StopLoss, 1e-9)
	assert.Equal(t, 1.0, lv.RiskRewardRatio)

	require.NotPanics(t, func() {
		_, err := NewEngine().Generate(models.OptionAnalysis{Symbol: "NAN", CurrentPrice: 200, SupportLevels: []float64{math.NaN()}})
		require.NoError(t, err)
	})
}
