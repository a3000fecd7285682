package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
)

// AnalysisRunsSchema creates the run history table. Applied once at startup
// through the clickhouse client's InitSchema.
var AnalysisRunsSchema = []string{
	`CREATE TABLE IF NOT EXISTS analysis_runs (
		ticker          LowCardinality(String),
		generated_at    DateTime,
		current_price   Float64,
		recommendation  LowCardinality(String),
		confidence      Float64,
		regime          LowCardinality(String),
		rsi             Float64,
		signal_count    UInt32,
		anomaly_count   UInt32
	) ENGINE = MergeTree()
	ORDER BY (ticker, generated_at)`,
}

// ClickHouseReportStore persists one row per completed analysis run.
type ClickHouseReportStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseReportStore creates a ClickHouse-backed report store.
func NewClickHouseReportStore(db *sql.DB, table string) repository.ReportStore {
	if table == "" {
		table = "analysis_runs"
	}
	return &ClickHouseReportStore{db: db, table: table}
}

func (s *ClickHouseReportStore) Store(ctx context.Context, report *models.AnalysisReport) error {
	q := fmt.Sprintf(`INSERT INTO %s
		(ticker, generated_at, current_price, recommendation, confidence, regime, rsi, signal_count, anomaly_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	_, err := s.db.ExecContext(ctx, q,
		report.Ticker,
		report.GeneratedAt,
		report.CurrentPrice,
		string(report.Recommendation.Overall),
		report.Recommendation.Confidence,
		string(report.Regime),
		report.Indicators.RSI,
		uint32(len(report.Recommendation.Signals)),
		uint32(len(report.Anomalies)),
	)
	if err != nil {
		return fmt.Errorf("store analysis run: %w", err)
	}
	return nil
}

func (s *ClickHouseReportStore) RecentRuns(ctx context.Context, ticker string, limit int) ([]models.RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	q := fmt.Sprintf(`SELECT ticker, generated_at, current_price, recommendation, confidence, regime, rsi, signal_count, anomaly_count
		FROM %s WHERE ticker = ? ORDER BY generated_at DESC LIMIT ?`, s.table)
	rows, err := s.db.QueryContext(ctx, q, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var r models.RunSummary
		var generatedAt time.Time
		var recommendation, regime string
		var signalCount, anomalyCount uint32
		if err := rows.Scan(&r.Ticker, &generatedAt, &r.CurrentPrice, &recommendation, &r.Confidence, &regime, &r.RSI, &signalCount, &anomalyCount); err != nil {
			return nil, fmt.Errorf("scan analysis run: %w", err)
		}
		r.GeneratedAt = generatedAt
		r.Recommendation = models.SignalType(recommendation)
		r.Regime = models.Regime(regime)
		r.SignalCount = int(signalCount)
		r.AnomalyCount = int(anomalyCount)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *ClickHouseReportStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseReportStore) Close() error {
	return nil // connection owned by pkg/clickhouse
}
