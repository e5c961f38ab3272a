package di

import (
	"context"
	"fmt"
	"time"

	"SmartMoney/internal/domain/repository"
	"SmartMoney/internal/handler/api"
	internalrepo "SmartMoney/internal/repository"
	icache "SmartMoney/internal/service/cache"
	"SmartMoney/internal/service/ratelimit"
	"SmartMoney/internal/services/signals"
	"SmartMoney/internal/usecase"
	"SmartMoney/pkg/breaker"
	pkgch "SmartMoney/pkg/clickhouse"
	"SmartMoney/pkg/config"
	xhttp "SmartMoney/pkg/http"
	pkgkafka "SmartMoney/pkg/kafka"
	applogger "SmartMoney/pkg/logger"
	"SmartMoney/pkg/metrics"
	pkgpg "SmartMoney/pkg/postgres"
	"SmartMoney/pkg/server"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideClickHouseStore connects to ClickHouse and ensures the snapshot table.
func ProvideClickHouseStore(cfg *config.Config, l *applogger.Logger) (*internalrepo.CHAnalysisStore, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	store := internalrepo.NewCHAnalysisStore(client, cfg.ClickHouse.Database+".latest_option_analysis")
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, append([]string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
	}, store.Schema()...)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvidePostgresStore connects to Postgres and ensures the snapshot table.
func ProvidePostgresStore(cfg *config.Config, l *applogger.Logger) (*internalrepo.PGAnalysisStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgpg.NewClient(ctx,
		pkgpg.WithHost(cfg.Postgres.Host, cfg.Postgres.Port),
		pkgpg.WithCredentials(cfg.Postgres.User, cfg.Postgres.Password),
		pkgpg.WithDatabase(cfg.Postgres.Database),
		pkgpg.WithSSLMode(cfg.Postgres.SSLMode),
		pkgpg.WithMaxConns(cfg.Postgres.MaxConns),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}

	store := internalrepo.NewPGAnalysisStore(client, cfg.Postgres.Table)
	store.SetLogger(l)
	if err := store.InitSchema(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return store, nil
}

// ProvideAnalysisStore selects the configured source and guards it with a
// circuit breaker.
func ProvideAnalysisStore(cfg *config.Config, l *applogger.Logger) (repository.AnalysisStore, func(), error) {
	var (
		base repository.AnalysisStore
		err  error
	)
	switch cfg.Source.Type {
	case config.SourceClickHouse:
		base, err = ProvideClickHouseStore(cfg, l)
	case config.SourceFile:
		base = internalrepo.NewFileSource(cfg.Source.FilePath)
	default:
		base, err = ProvidePostgresStore(cfg, l)
	}
	if err != nil {
		return nil, nil, err
	}

	store := internalrepo.NewBreakerStore(base, breaker.Settings{
		Name:        "analysis_store_" + cfg.Source.Type,
		MaxFailures: cfg.Source.Breaker.MaxFailures,
		Interval:    cfg.Source.Breaker.Interval,
		Timeout:     cfg.Source.Breaker.Timeout,
	}, l)
	l.Info("analysis store ready", applogger.String("source", cfg.Source.Type))

	cleanup := func() {
		if err := store.Close(); err != nil {
			l.Warn("analysis store close error", applogger.Error(err))
		}
	}
	return store, cleanup, nil
}

// ProvideSignalPublisher returns nil when batch publishing is disabled.
func ProvideSignalPublisher(cfg *config.Config, l *applogger.Logger) (repository.SignalPublisher, func(), error) {
	if !cfg.Kafka.Signals.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Signals.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.Signals.WriteTimeout, 0),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Signals.Topic)
	cleanup := func() {
		if err := pub.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return pub, cleanup, nil
}

func ProvideEngine() *signals.Engine {
	return signals.NewEngine()
}

func ProvideSignalPipeline(engine *signals.Engine, m repository.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.SignalPipeline {
	return usecase.NewSignalPipeline(engine, m, l, cfg.Signals.Workers)
}

func ProvideTradingSignalsUseCase(
	store repository.AnalysisStore,
	pipeline *usecase.SignalPipeline,
	pub repository.SignalPublisher,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.TradingSignalsUseCase {
	return usecase.NewTradingSignalsUseCase(store, pipeline, pub, m, l, cfg.Source.Timeout)
}

// ProvideResponseCache uses Redis when enabled, otherwise an in-process cache.
func ProvideResponseCache(cfg *config.Config, l *applogger.Logger) (icache.BytesCache, func()) {
	if !cfg.Redis.Enabled {
		return icache.NewTTLCache(), func() {}
	}
	rc := icache.NewRedisCache(icache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		l.Warn("redis unreachable; cache misses until it recovers",
			applogger.String("addr", cfg.Redis.Addr), applogger.Error(err))
	}
	return rc, func() { _ = rc.Close() }
}

func ProvideSignalsHandler(
	l *applogger.Logger,
	uc *usecase.TradingSignalsUseCase,
	cache icache.BytesCache,
	cfg *config.Config,
) *api.SignalsEchoHandler {
	h := api.NewSignalsEchoHandler(l, uc)
	h.SetCache(cache, cfg.Signals.CacheTTL)
	if cfg.Signals.RateLimitRPS > 0 {
		h.SetRateLimiter(ratelimit.New(cfg.Signals.RateLimitRPS, cfg.Signals.RateLimitBurst))
	}
	return h
}

// ProvideHTTPServer builds the echo server with all route handlers.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, sh *api.SignalsEchoHandler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer([]xhttp.Handler{sh},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithLogger(l),
		xhttp.WithMetrics(metricsPath, nil, nil),
	)
}

// ProvideIngestConsumer returns nil when snapshot ingest is disabled.
func ProvideIngestConsumer(
	cfg *config.Config,
	store repository.AnalysisStore,
	m repository.Metrics,
	l *applogger.Logger,
) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Ingest.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Ingest.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Ingest.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Ingest.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Ingest.RetryMax, cfg.Kafka.Ingest.BackoffMin, cfg.Kafka.Ingest.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Ingest.DLQTopic),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.TraceHook())
	consumer.RegisterHandler(usecase.NewAnalysisIngestHandler(cfg.Kafka.Ingest.Topic, store, m))
	return consumer, nil
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
) *server.App {
	return server.New(cfg, l, httpServer, consumer)
}
