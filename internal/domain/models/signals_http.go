package models

// Requests for signal HTTP endpoints. Defined in domain for consistency and reuse.

type TradingSignalsRequest struct {
	SignalType    string `query:"signal_type" json:"signal_type" default:"ALL" validate:"oneof=ALL BUY SELL"`
	MinConfidence *int   `query:"min_confidence" json:"min_confidence" validate:"omitempty,gte=0,lte=100"`
	Timeframe     string `query:"timeframe" json:"timeframe" default:"ALL" validate:"oneof=ALL INTRADAY SWING POSITIONAL"`
	Limit         *int   `query:"limit" json:"limit" validate:"omitempty,gte=1"`
}

// Filter converts the request into an engine filter.
func (r TradingSignalsRequest) Filter() SignalFilter {
	minConf := DefaultMinConfidence
	if r.MinConfidence != nil {
		minConf = *r.MinConfidence
	}
	limit := DefaultLimit
	if r.Limit != nil {
		limit = *r.Limit
	}
	return SignalFilter{
		SignalType:    r.SignalType,
		MinConfidence: minConf,
		Timeframe:     r.Timeframe,
		Limit:         limit,
	}
}
