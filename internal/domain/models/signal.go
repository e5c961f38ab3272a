package models

import "time"

type SignalType string

const (
	SignalBuy   SignalType = "BUY"
	SignalSell  SignalType = "SELL"
	SignalHold  SignalType = "HOLD"
	SignalAvoid SignalType = "AVOID"
)

type Strength string

const (
	StrengthStrong   Strength = "STRONG"
	StrengthModerate Strength = "MODERATE"
	StrengthWeak     Strength = "WEAK"
)

// Rank orders strengths for sorting: STRONG > MODERATE > WEAK.
func (s Strength) Rank() int {
	switch s {
	case StrengthStrong:
		return 3
	case StrengthModerate:
		return 2
	case StrengthWeak:
		return 1
	}
	return 0
}

type Timeframe string

const (
	TimeframeIntraday   Timeframe = "INTRADAY"
	TimeframeSwing      Timeframe = "SWING"
	TimeframePositional Timeframe = "POSITIONAL"
)

type MarketCap string

const (
	MarketCapLarge MarketCap = "LARGE"
	MarketCapMid   MarketCap = "MID"
	MarketCapSmall MarketCap = "SMALL"
)

type Liquidity string

const (
	LiquidityHigh   Liquidity = "HIGH"
	LiquidityMedium Liquidity = "MEDIUM"
	LiquidityLow    Liquidity = "LOW"
)

type Sector string

const (
	SectorBanking Sector = "Banking"
	SectorIT      Sector = "IT"
	SectorOilGas  Sector = "Oil & Gas"
	SectorOthers  Sector = "Others"
)

type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
)

// Factors holds the five weighted sub-scores of a signal.
type Factors struct {
	OptionFlow float64 `json:"option_flow_score"`
	Momentum   float64 `json:"momentum_score"`
	Volume     float64 `json:"volume_score"`
	Technical  float64 `json:"technical_score"`
	Risk       float64 `json:"risk_score"`
}

// NamedFactor is a factor keyed by its wire name.
type NamedFactor struct {
	Name  string
	Value float64
}

// Named lists the factors in their canonical order.
func (f Factors) Named() []NamedFactor {
	return []NamedFactor{
		{"option_flow_score", f.OptionFlow},
		{"momentum_score", f.Momentum},
		{"volume_score", f.Volume},
		{"technical_score", f.Technical},
		{"risk_score", f.Risk},
	}
}

// TradingSignal is the engine output for one symbol.
type TradingSignal struct {
	Symbol            string     `json:"symbol"`
	SignalType        SignalType `json:"signal_type"`
	SignalStrength    Strength   `json:"signal_strength"`
	Confidence        float64    `json:"confidence"`
	RawConfidence     float64    `json:"raw_confidence"`
	EntryPrice        float64    `json:"entry_price"`
	Target1           float64    `json:"target_1"`
	Target2           float64    `json:"target_2"`
	StopLoss          float64    `json:"stop_loss"`
	RiskRewardRatio   float64    `json:"risk_reward_ratio"`
	Timeframe         Timeframe  `json:"timeframe"`
	Reasoning         string     `json:"reasoning"`
	Score             float64    `json:"score"`
	Factors           Factors    `json:"factors"`
	Alerts            []string   `json:"alerts"`
	Sector            Sector     `json:"sector"`
	MarketCapCategory MarketCap  `json:"market_cap_category"`
	LiquidityRating   Liquidity  `json:"liquidity_rating"`
	AnalysisTimestamp time.Time  `json:"analysis_timestamp"`
}

type MarketSummary struct {
	TotalSignals      int  `json:"total_signals"`
	BuySignals        int  `json:"buy_signals"`
	SellSignals       int  `json:"sell_signals"`
	StrongSignals     int  `json:"strong_signals"`
	AverageConfidence int  `json:"average_confidence"`
	MarketBias        Bias `json:"market_bias"`
}
