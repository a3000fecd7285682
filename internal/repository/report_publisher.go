package repository

import (
	"context"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	pkgkafka "StockPulse/pkg/kafka"
)

// KafkaReportPublisher publishes a compact run summary per completed
// analysis. Messages are keyed by ticker so per-symbol ordering holds.
type KafkaReportPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaReportPublisher creates a Kafka report publisher.
func NewKafkaReportPublisher(producer *pkgkafka.Producer, topic string) repository.ReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, report *models.AnalysisReport) error {
	return p.producer.Publish(ctx, p.topic, []byte(report.Ticker), map[string]interface{}{
		"ticker":         report.Ticker,
		"generated_at":   report.GeneratedAt,
		"current_price":  report.CurrentPrice,
		"recommendation": report.Recommendation.Overall,
		"confidence":     report.Recommendation.Confidence,
		"regime":         report.Regime,
		"rsi":            report.Indicators.RSI,
		"signal_count":   len(report.Recommendation.Signals),
		"anomaly_count":  len(report.Anomalies),
	})
}

func (p *KafkaReportPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
