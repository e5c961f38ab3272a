package usecase

import (
	"context"
	"fmt"
	"time"

	"SmartMoney/internal/domain/models"
	domrepo "SmartMoney/internal/domain/repository"
	applogger "SmartMoney/pkg/logger"
)

// TradingSignalsUseCase loads the latest snapshots, runs the pipeline and
// announces the batch.
type TradingSignalsUseCase struct {
	store     domrepo.AnalysisStore
	pipeline  *SignalPipeline
	publisher domrepo.SignalPublisher
	metrics   domrepo.Metrics
	logger    *applogger.Logger
	timeout   time.Duration
}

func NewTradingSignalsUseCase(
	store domrepo.AnalysisStore,
	pipeline *SignalPipeline,
	publisher domrepo.SignalPublisher,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	timeout time.Duration,
) *TradingSignalsUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = applogger.NewNop()
	}
	return &TradingSignalsUseCase{
		store:     store,
		pipeline:  pipeline,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		timeout:   timeout,
	}
}

// Generate returns an error only when the snapshots cannot be loaded.
func (uc *TradingSignalsUseCase) Generate(ctx context.Context, f models.SignalFilter) (*models.SignalsResult, error) {
	loadCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	records, err := uc.store.LatestAnalyses(loadCtx)
	if uc.metrics != nil {
		uc.metrics.RecordLatency("store_latest_analyses", time.Since(start).Seconds())
	}
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("store_load")
		}
		return nil, fmt.Errorf("load option analysis: %w", err)
	}

	res := uc.pipeline.Run(ctx, records, f)

	if uc.publisher != nil && len(res.Signals) > 0 {
		if err := uc.publisher.PublishBatch(ctx, res); err != nil {
			if uc.metrics != nil {
				uc.metrics.RecordError("publish_signals")
			}
			uc.logger.Error("signals.publish error",
				applogger.String("generation_id", res.GenerationID),
				applogger.Error(err),
			)
		}
	}
	return res, nil
}

// Health reports whether the snapshot store is reachable.
func (uc *TradingSignalsUseCase) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.store.Health(ctx)
}
