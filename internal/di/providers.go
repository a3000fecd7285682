package di

import (
	"context"
	"fmt"
	"time"

	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/handler/api"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/service/yahoo"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	pkgkafka "StockPulse/pkg/kafka"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client and initializes the
// run-history schema. Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	schema := append(
		[]string{"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database},
		internalrepo.AnalysisRunsSchema...,
	)
	if err := client.InitSchema(ctx, schema); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideReportStore creates the run-history store. Nil without ClickHouse.
func ProvideReportStore(client *pkgch.Client) drepo.ReportStore {
	if client == nil {
		return nil
	}
	return internalrepo.NewClickHouseReportStore(client.DB(), "analysis_runs")
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil when Kafka is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideReportPublisher creates the report publisher. Nil without Kafka.
func ProvideReportPublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.ReportPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCache creates the cache service: Redis when enabled, in-process
// memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		// memory front, redis behind
		return cache.NewLayeredCache(c, cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize)), nil
	}
	return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
}

// ProvideMarketData creates the market data client.
func ProvideMarketData(cfg *config.Config) drepo.MarketData {
	return yahoo.New(cfg)
}

// ProvideQuoteStream creates the streaming quote feed. Nil when disabled.
func ProvideQuoteStream(cfg *config.Config, log *logger.Logger) drepo.QuoteStream {
	if !cfg.Yahoo.StreamEnabled {
		return nil
	}
	return yahoo.NewStream(
		cfg.Yahoo.StreamURL,
		cfg.Yahoo.Symbols,
		cfg.Yahoo.ReconnectDelay,
		cfg.Yahoo.PingInterval,
		log,
	)
}

// ProvideArtifactStore creates the filesystem artifact store.
func ProvideArtifactStore(cfg *config.Config) (drepo.ArtifactStore, error) {
	store, err := internalrepo.NewFileArtifactStore(cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("artifact store: %w", err)
	}
	return store, nil
}

// ProvideAnalyzer creates the analysis pipeline use case.
func ProvideAnalyzer(
	cfg *config.Config,
	market drepo.MarketData,
	artifacts drepo.ArtifactStore,
	store drepo.ReportStore,
	publisher drepo.ReportPublisher,
	cacheSvc cache.Service,
	metrics drepo.Metrics,
	log *logger.Logger,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(cfg, market, artifacts, store, publisher, cacheSvc, metrics, log)
}

// ProvideStocks creates the lookup use case.
func ProvideStocks(
	market drepo.MarketData,
	store drepo.ReportStore,
	cacheSvc cache.Service,
	metrics drepo.Metrics,
	log *logger.Logger,
) *usecase.Stocks {
	return usecase.NewStocks(market, store, cacheSvc, metrics, log)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	log *logger.Logger,
	analyzer *usecase.Analyzer,
	stocks *usecase.Stocks,
	store drepo.ReportStore,
	stream drepo.QuoteStream,
) *api.StocksHandler {
	return api.NewStocksHandler(log, analyzer, stocks, store, stream)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler *api.StocksHandler,
	stream drepo.QuoteStream,
	metrics drepo.Metrics,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, log, handler, stream, metrics, chClient, producer, cacheSvc)
}
