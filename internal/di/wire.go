//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvideReportStore,
		ProvideReportPublisher,
		ProvideMarketData,
		ProvideQuoteStream,
		ProvideArtifactStore,

		// Use cases
		ProvideAnalyzer,
		ProvideStocks,

		// HTTP handler and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
