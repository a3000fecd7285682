package repository

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
)

// MarketData provides historical series and listing metadata for tickers.
type MarketData interface {
	History(ctx context.Context, ticker string, from, to time.Time) ([]models.PricePoint, error)
	Quote(ctx context.Context, ticker string) (models.Quote, error)
	CompanyInfo(ctx context.Context, ticker string) (models.CompanyInfo, error)
	Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error)
}

// QuoteStream pushes live quote updates for a fixed symbol set.
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// ReportStore persists one row per completed analysis run.
type ReportStore interface {
	Store(ctx context.Context, report *models.AnalysisReport) error
	RecentRuns(ctx context.Context, ticker string, limit int) ([]models.RunSummary, error)
	Health(ctx context.Context) error
	Close() error
}

// ReportPublisher publishes completed analysis reports for downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, report *models.AnalysisReport) error
	Close() error
}

// ArtifactStore writes report artifacts and returns type -> file path.
type ArtifactStore interface {
	Save(report *models.AnalysisReport) (map[string]string, error)
}

// Metrics records operational measurements.
type Metrics interface {
	RecordAnalysis(ticker, result string)
	RecordError(kind string)
	RecordLastPrice(ticker string, price float64)
	RecordStageLatency(stage string, seconds float64)
	RecordSignal(indicator, direction string)
}
