package models

import "time"

// OptionAnalysis is one per-symbol option-analytics snapshot produced by the
// upstream collectors. Absent numeric fields decode as zero.
type OptionAnalysis struct {
	Symbol                   string    `json:"symbol"`
	Score                    float64   `json:"score"`
	InstitutionalSentiment   string    `json:"institutional_sentiment"`
	OverallPCR               float64   `json:"overall_pcr"`
	CurrentPrice             float64   `json:"current_price"`
	MaxPain                  float64   `json:"max_pain"`
	SupportLevels            []float64 `json:"support_levels"`
	ResistanceLevels         []float64 `json:"resistance_levels"`
	NetCallBuildup           float64   `json:"net_call_buildup"`
	NetPutBuildup            float64   `json:"net_put_buildup"`
	InstitutionalBullishFlow float64   `json:"institutional_bullish_flow"`
	InstitutionalBearishFlow float64   `json:"institutional_bearish_flow"`
	NetInstitutionalFlow     float64   `json:"net_institutional_flow"`
	UnusualActivity          []string  `json:"unusual_activity"`
	StrengthSignals          []string  `json:"strength_signals"`
	Reasoning                string    `json:"reasoning"`
	UpdatedAt                time.Time `json:"updated_at"`
}
