package signals

import (
	"testing"

	"SmartMoney/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestScoreOptionFlow(t *testing.T) {
	tests := []struct {
		name   string
		in     models.OptionAnalysis
		score  float64
		conf   float64
		alerts []string
	}{
		{
			name:  "neutral pcr only base",
			in:    models.OptionAnalysis{Score: 10, OverallPCR: 1.0},
			score: 3,
		},
		{
			name:   "low pcr",
			in:     models.OptionAnalysis{Score: 0, OverallPCR: 0.5},
			score:  25,
			conf:   15,
			alerts: []string{"VERY_LOW_PCR_BULLISH"},
		},
		{
			name:   "high pcr and selling",
			in:     models.OptionAnalysis{OverallPCR: 1.5, NetInstitutionalFlow: -70},
			score:  -45,
			conf:   35,
			alerts: []string{"HIGH_PCR_BEARISH", "STRONG_INSTITUTIONAL_SELLING"},
		},
		{
			name:   "buying and buildup",
			in:     models.OptionAnalysis{OverallPCR: 1.0, NetInstitutionalFlow: 51, NetCallBuildup: 3e7, NetPutBuildup: -3e7},
			score:  20,
			conf:   35,
			alerts: []string{"STRONG_INSTITUTIONAL_BUYING", "HIGH_VOLUME_ACTIVITY"},
		},
		{
			name:  "flow at threshold ignored",
			in:    models.OptionAnalysis{OverallPCR: 1.0, NetInstitutionalFlow: 50},
			score: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ScoreOptionFlow(tt.in)
			assert.InDelta(t, tt.score, r.Score, 1e-9)
			assert.InDelta(t, tt.conf, r.Confidence, 1e-9)
			assert.Equal(t, tt.alerts, r.Alerts)
		})
	}
}

func TestScoreMomentum(t *testing.T) {
	r := ScoreMomentum(models.OptionAnalysis{
		Score:                    5,
		InstitutionalBullishFlow: 100,
		InstitutionalBearishFlow: 20,
		StrengthSignals:          []string{"STRONG_CALL_WRITING", "weak", "STRONG_PUT_UNWIND"},
	})
	assert.Equal(t, 50.0, r.Score)
	assert.Equal(t, 40.0, r.Confidence)
	assert.Equal(t, []string{"STRONG_BULLISH_MOMENTUM", "MULTIPLE_STRENGTH_SIGNALS"}, r.Alerts)

	r = ScoreMomentum(models.OptionAnalysis{
		Score:                    -5,
		InstitutionalBullishFlow: 0,
		InstitutionalBearishFlow: 61,
		StrengthSignals:          []string{"STRONG", "STRONG"},
	})
	assert.Equal(t, -50.0, r.Score)
	assert.Equal(t, []string{"STRONG_BEARISH_MOMENTUM", "MULTIPLE_STRENGTH_SIGNALS"}, r.Alerts)

	r = ScoreMomentum(models.OptionAnalysis{InstitutionalBullishFlow: 60})
	assert.Zero(t, r.Score)
	assert.Empty(t, r.Alerts)
}

func TestScoreVolume(t *testing.T) {
	heavy := []string{"Heavy Call Writing at 100", "Heavy Put Writing at 90", "Heavy Call Writing at 110",
		"Heavy Put Writing at 80", "Heavy Call Writing at 120", "Light"}

	r := ScoreVolume(models.OptionAnalysis{NetCallBuildup: 8e7, NetPutBuildup: 3e7, UnusualActivity: heavy})
	assert.Equal(t, 25.0, r.Score)
	assert.Equal(t, 20.0, r.Confidence)
	assert.Empty(t, r.Alerts)

	r = ScoreVolume(models.OptionAnalysis{NetCallBuildup: -6e7})
	assert.Equal(t, 10.0, r.Score)
	assert.Equal(t, 5.0, r.Confidence)

	r = ScoreVolume(models.OptionAnalysis{NetCallBuildup: 5e7, UnusualActivity: heavy[:4]})
	assert.Zero(t, r.Score)
	assert.Zero(t, r.Confidence)
}

func TestScoreTechnical(t *testing.T) {
	r := ScoreTechnical(models.OptionAnalysis{
		CurrentPrice:     100,
		MaxPain:          110,
		SupportLevels:    []float64{99, 90},
		ResistanceLevels: []float64{101.5},
	})
	assert.Equal(t, 17.0, r.Score)
	assert.Equal(t, 23.0, r.Confidence)
	assert.Equal(t, []string{"MAX_PAIN_UPSIDE_TARGET", "NEAR_STRONG_SUPPORT", "NEAR_RESISTANCE"}, r.Alerts)

	r = ScoreTechnical(models.OptionAnalysis{CurrentPrice: 100, MaxPain: 90})
	assert.Equal(t, -15.0, r.Score)
	assert.Equal(t, []string{"MAX_PAIN_DOWNSIDE_RISK"}, r.Alerts)

	r = ScoreTechnical(models.OptionAnalysis{CurrentPrice: 100, MaxPain: 101, SupportLevels: []float64{98}})
	assert.Zero(t, r.Score, "2% away is not near")
	assert.Empty(t, r.Alerts)

	r = ScoreTechnical(models.OptionAnalysis{MaxPain: 500, SupportLevels: []float64{1}})
	assert.Equal(t, FactorResult{}, r)
}

func TestScoreRisk(t *testing.T) {
	r := ScoreRisk(models.OptionAnalysis{Symbol: "YESBANK"})
	assert.Equal(t, -5.0, r.Score)
	assert.Zero(t, r.Confidence)
	assert.Equal(t, []string{"HIGH_VOLATILITY_STOCK"}, r.Alerts)

	r = ScoreRisk(models.OptionAnalysis{Symbol: "TCS"})
	assert.Equal(t, 5.0, r.Score)
	assert.Equal(t, 5.0, r.Confidence)
	assert.Equal(t, []string{"LOW_VOLATILITY_STOCK"}, r.Alerts)

	r = ScoreRisk(models.OptionAnalysis{Symbol: "UNKNOWN"})
	assert.Zero(t, r.Score)
	assert.Nil(t, r.Alerts)
}

func TestWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, s := range DefaultScorers() {
		sum += s.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}
