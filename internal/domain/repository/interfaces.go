package repository

import (
	"context"

	"SmartMoney/internal/domain/models"
)

// AnalysisStore holds the latest option-analysis snapshot per symbol.
type AnalysisStore interface {
	// LatestAnalyses returns one snapshot per symbol ordered by score descending.
	LatestAnalyses(ctx context.Context) ([]models.OptionAnalysis, error)
	// Store upserts a snapshot by symbol.
	Store(ctx context.Context, a *models.OptionAnalysis) error
	Health(ctx context.Context) error // ping
	Close() error
}

type SignalPublisher interface {
	PublishBatch(ctx context.Context, res *models.SignalsResult) error
	Close() error
}

type Metrics interface {
	RecordSignal(signalType, strength string)
	RecordSymbolFailure(reason string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
