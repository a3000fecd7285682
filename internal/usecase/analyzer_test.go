package usecase

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/repository"
	"StockPulse/pkg/config"
	"StockPulse/pkg/logger"
)

type fakeMarket struct {
	points  []models.PricePoint
	company models.CompanyInfo
}

func (f *fakeMarket) History(ctx context.Context, ticker string, from, to time.Time) ([]models.PricePoint, error) {
	return f.points, nil
}

func (f *fakeMarket) Quote(ctx context.Context, ticker string) (models.Quote, error) {
	return models.Quote{Ticker: ticker, Price: f.points[len(f.points)-1].Close}, nil
}

func (f *fakeMarket) CompanyInfo(ctx context.Context, ticker string) (models.CompanyInfo, error) {
	return f.company, nil
}

func (f *fakeMarket) Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error) {
	return nil, nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	analyses map[string]string
	errors   []string
	signals  []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{analyses: make(map[string]string)}
}

func (m *fakeMetrics) RecordAnalysis(ticker, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[ticker] = result
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, kind)
}

func (m *fakeMetrics) RecordLastPrice(ticker string, price float64) {}

func (m *fakeMetrics) RecordStageLatency(stage string, seconds float64) {}

func (m *fakeMetrics) RecordSignal(indicator, direction string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals = append(m.signals, indicator+":"+direction)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Analysis.DefaultDays = 365
	cfg.Analysis.ForecastHorizon = 5
	cfg.Analysis.Contamination = 0.1
	cfg.Analysis.RandomSeed = 42
	cfg.Analysis.Sentiment = 0.5
	cfg.Cache.TTL = time.Minute
	return cfg
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newTestAnalyzer(t *testing.T, points []models.PricePoint) (*Analyzer, *fakeMetrics) {
	t.Helper()
	artifacts, err := repository.NewFileArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("artifact store: %v", err)
	}
	metrics := newFakeMetrics()
	market := &fakeMarket{points: points, company: models.CompanyInfo{Ticker: "TEST", Name: "Test Corp"}}
	return NewAnalyzer(testConfig(), market, artifacts, nil, nil, nil, metrics, testLogger(t)), metrics
}

func constantPoints(n int) []models.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, n)
	for i := range points {
		points[i] = models.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Open:      100, High: 105, Low: 95, Close: 102, Volume: 1e6,
		}
	}
	return points
}

func TestAnalyzeConstantSeriesHolds(t *testing.T) {
	a, metrics := newTestAnalyzer(t, constantPoints(400))
	result, err := a.Analyze(context.Background(), models.AnalyzeRequest{Ticker: "test", Days: 400})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	report := result.Report

	if report.Ticker != "TEST" {
		t.Fatalf("ticker = %q, want normalized TEST", report.Ticker)
	}
	if report.Indicators.RSI != 50 {
		t.Fatalf("RSI = %v, want degenerate 50", report.Indicators.RSI)
	}
	if report.Indicators.SMA20 != 102 || report.Indicators.SMA50 != 102 || report.Indicators.SMA200 != 102 {
		t.Fatalf("SMAs = %v/%v/%v, want all 102",
			report.Indicators.SMA20, report.Indicators.SMA50, report.Indicators.SMA200)
	}
	if report.Indicators.Bollinger.Bandwidth != 0 || report.Indicators.Bollinger.PercentB != 0.5 {
		t.Fatalf("bollinger = %+v, want bandwidth 0, percent_b 0.5", report.Indicators.Bollinger)
	}
	if len(report.Recommendation.Signals) != 0 {
		t.Fatalf("expected no signals for flat series, got %v", report.Recommendation.Signals)
	}
	if report.Recommendation.Overall != models.SignalHold || report.Recommendation.Confidence != 0.5 {
		t.Fatalf("got %v/%v, want HOLD/0.5",
			report.Recommendation.Overall, report.Recommendation.Confidence)
	}
	if report.Regime != models.RegimeNeutral {
		t.Fatalf("regime = %v, want NEUTRAL", report.Regime)
	}
	for i, f := range report.Forecast {
		if math.Abs(f-102) > 1e-9 {
			t.Fatalf("forecast[%d] = %v, want 102", i, f)
		}
	}
	if got := metrics.analyses["TEST"]; got != "HOLD" {
		t.Fatalf("recorded analysis result = %q, want HOLD", got)
	}
	if len(result.OutputFiles) != 3 {
		t.Fatalf("expected 3 artifacts, got %v", result.OutputFiles)
	}
}

// overboughtPoints builds mostly gains with small periodic dips: RSI well
// above 70 without the zero-loss degenerate case.
func overboughtPoints(n int) []models.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, 0, n)
	price := 100.0
	for i := 0; i < n; i++ {
		if i%5 == 4 {
			price -= 0.1
		} else {
			price += 1
		}
		points = append(points, models.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Open:      price, High: price + 0.5, Low: price - 0.5, Close: price, Volume: 1e6,
		})
	}
	return points
}

func TestAnalyzeOverboughtSeriesEmitsRSISell(t *testing.T) {
	a, _ := newTestAnalyzer(t, overboughtPoints(60))
	result, err := a.Analyze(context.Background(), models.AnalyzeRequest{Ticker: "TEST", Days: 60})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	report := result.Report

	if report.Indicators.RSI < 70 {
		t.Fatalf("RSI = %v, want >= 70 for a steadily rising series", report.Indicators.RSI)
	}
	var sawRSISell bool
	for _, s := range report.Recommendation.Signals {
		if s.Indicator == "RSI" && s.Direction == models.SignalSell {
			sawRSISell = true
		}
	}
	if !sawRSISell {
		t.Fatalf("expected RSI overbought SELL signal, got %v", report.Recommendation.Signals)
	}
	if report.Indicators.MACD.Line <= 0 {
		t.Fatalf("MACD line = %v, want positive in an uptrend", report.Indicators.MACD.Line)
	}
}

func TestAnalyzeExplicitZeroSentimentGradesStrongSell(t *testing.T) {
	// The overbought series emits exactly one SELL-class signal (RSI), so
	// sell > buy; sentiment 0 must survive as-is and grade STRONG_SELL
	// rather than being replaced by the neutral default.
	a, _ := newTestAnalyzer(t, overboughtPoints(60))
	sentiment := 0.0
	result, err := a.Analyze(context.Background(), models.AnalyzeRequest{
		Ticker: "TEST", Days: 60, Sentiment: &sentiment,
	})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	rec := result.Report.Recommendation
	if rec.Overall != models.SignalStrongSell || rec.Confidence != 0.8 {
		t.Fatalf("got %v/%v, want STRONG_SELL/0.8 with bearish sentiment", rec.Overall, rec.Confidence)
	}
	if rec.Sentiment.OverallScore != 0 {
		t.Fatalf("sentiment = %v, want explicit 0 preserved", rec.Sentiment.OverallScore)
	}
}

func TestAnalyzeDeterministicAcrossRuns(t *testing.T) {
	points := constantPoints(120)
	a1, _ := newTestAnalyzer(t, points)
	a2, _ := newTestAnalyzer(t, points)

	r1, err := a1.Analyze(context.Background(), models.AnalyzeRequest{Ticker: "TEST", Days: 120})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	r2, err := a2.Analyze(context.Background(), models.AnalyzeRequest{Ticker: "TEST", Days: 120})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if r1.Report.Indicators.RSI != r2.Report.Indicators.RSI ||
		r1.Report.Recommendation.Overall != r2.Report.Recommendation.Overall ||
		r1.Report.Regime != r2.Report.Regime ||
		len(r1.Report.Anomalies) != len(r2.Report.Anomalies) {
		t.Fatalf("pipeline not deterministic: %+v vs %+v", r1.Report, r2.Report)
	}
}

func TestAnalyzeAnomalyBudget(t *testing.T) {
	a, _ := newTestAnalyzer(t, constantPoints(200))
	result, err := a.Analyze(context.Background(), models.AnalyzeRequest{Ticker: "TEST", Days: 200})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if got, want := len(result.Report.Anomalies), int(math.Round(0.1*200)); got != want {
		t.Fatalf("anomaly count = %d, want contamination budget %d", got, want)
	}
	for _, an := range result.Report.Anomalies {
		if an.Confidence < 0 || an.Confidence > 1 {
			t.Fatalf("anomaly confidence %v out of bounds", an.Confidence)
		}
	}
}
