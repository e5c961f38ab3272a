package models

import "time"

// FilterAll disables the signal type or timeframe filter.
const FilterAll = "ALL"

const (
	DefaultMinConfidence = 70
	DefaultLimit         = 20
)

// SignalFilter is applied after generation. Zero Limit means no truncation.
type SignalFilter struct {
	SignalType    string `json:"signal_type"`
	MinConfidence int    `json:"min_confidence"`
	Timeframe     string `json:"timeframe"`
	Limit         int    `json:"limit"`
}

// DefaultFilter returns the filter used when the caller supplies nothing.
func DefaultFilter() SignalFilter {
	return SignalFilter{
		SignalType:    FilterAll,
		MinConfidence: DefaultMinConfidence,
		Timeframe:     FilterAll,
		Limit:         DefaultLimit,
	}
}

// Accepts reports whether s passes the type, timeframe and confidence filters.
func (f SignalFilter) Accepts(s TradingSignal) bool {
	if s.Confidence < float64(f.MinConfidence) {
		return false
	}
	if f.SignalType != "" && f.SignalType != FilterAll && string(s.SignalType) != f.SignalType {
		return false
	}
	if f.Timeframe != "" && f.Timeframe != FilterAll && string(s.Timeframe) != f.Timeframe {
		return false
	}
	return true
}

// SignalsResult is a single generation batch.
type SignalsResult struct {
	GenerationID  string          `json:"generation_id"`
	Signals       []TradingSignal `json:"signals"`
	TotalSignals  int             `json:"total_signals"`
	Filters       SignalFilter    `json:"filters"`
	Timestamp     time.Time       `json:"timestamp"`
	MarketSummary *MarketSummary  `json:"market_summary,omitempty"`
	Skipped       int             `json:"skipped"`
	Message       string          `json:"message,omitempty"`
}
