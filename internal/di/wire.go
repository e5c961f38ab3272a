//go:build wireinject
// +build wireinject

package di

import (
	"SmartMoney/internal/domain/repository"
	"SmartMoney/pkg/config"
	"SmartMoney/pkg/metrics"
	"SmartMoney/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,

		// Metrics
		ProvideMetrics,
		wire.Bind(new(repository.Metrics), new(*metrics.Recorder)),

		// Infrastructure
		ProvideAnalysisStore,
		ProvideSignalPublisher,
		ProvideResponseCache,

		// Engine and use cases
		ProvideEngine,
		ProvideSignalPipeline,
		ProvideTradingSignalsUseCase,

		// Transport
		ProvideSignalsHandler,
		ProvideHTTPServer,
		ProvideIngestConsumer,

		ProvideApp,
	)
	return nil, nil, nil
}
