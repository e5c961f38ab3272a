// Package signals turns option-analytics snapshots into trade signals.
package signals

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"SmartMoney/internal/domain/models"
)

var (
	ErrMissingSymbol = errors.New("missing symbol")
	ErrInvalidPrice  = errors.New("invalid current price")
)

// EngineOption configures Engine.
type EngineOption func(*Engine)

// Engine scores a single snapshot. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	scorers []Scorer
	now     func() time.Time
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		scorers: DefaultScorers(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithClock sets the analysis timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithScorers replaces the factor set.
func WithScorers(s []Scorer) EngineOption {
	return func(e *Engine) {
		e.scorers = s
	}
}

// Generate produces the signal for one snapshot.
func (e *Engine) Generate(a models.OptionAnalysis) (models.TradingSignal, error) {
	if strings.TrimSpace(a.Symbol) == "" {
		return models.TradingSignal{}, ErrMissingSymbol
	}
	if a.CurrentPrice <= 0 || math.IsNaN(a.CurrentPrice) || math.IsInf(a.CurrentPrice, 0) {
		return models.TradingSignal{}, fmt.Errorf("%s: %w: %v", a.Symbol, ErrInvalidPrice, a.CurrentPrice)
	}

	agg := Combine(a, e.scorers)
	out := Decide(agg.Score, agg.Confidence)
	lv := CalculateLevels(a, out.Type)
	mc := ResolveContext(a.Symbol, a.CurrentPrice)

	return models.TradingSignal{
		Symbol:            a.Symbol,
		SignalType:        out.Type,
		SignalStrength:    out.Strength,
		Confidence:        agg.Confidence,
		RawConfidence:     agg.RawConfidence,
		EntryPrice:        lv.Entry,
		Target1:           lv.Target1,
		Target2:           lv.Target2,
		StopLoss:          lv.StopLoss,
		RiskRewardRatio:   lv.RiskRewardRatio,
		Timeframe:         out.Timeframe,
		Reasoning:         Explain(out, agg.Factors, agg.Alerts, a.Reasoning),
		Score:             agg.Score,
		Factors:           agg.Factors,
		Alerts:            agg.Alerts,
		Sector:            mc.Sector,
		MarketCapCategory: mc.MarketCap,
		LiquidityRating:   mc.Liquidity,
		AnalysisTimestamp: e.now().UTC(),
	}, nil
}
