package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/series"
	"StockPulse/internal/services/anomaly"
	"StockPulse/internal/services/forecast"
	"StockPulse/internal/services/indicators"
	"StockPulse/internal/services/patterns"
	"StockPulse/internal/services/signals"
	"StockPulse/pkg/cache"
	"StockPulse/pkg/config"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// Analyzer runs the full analysis pipeline for one ticker: fetch the
// window, compute indicators and classifications concurrently, synthesize a
// recommendation and persist the report. Storage, publishing and caching
// are best-effort: their failures are logged and recorded, never returned,
// so a computed report always reaches the caller.
type Analyzer struct {
	market    drepo.MarketData
	artifacts drepo.ArtifactStore
	store     drepo.ReportStore     // optional
	publisher drepo.ReportPublisher // optional
	cache     cache.Service         // optional
	metrics   drepo.Metrics
	detector  *anomaly.Detector
	log       *logger.Logger

	defaultDays      int
	horizon          int
	defaultSentiment float64
	cacheTTL         time.Duration
}

// NewAnalyzer wires the pipeline from config and collaborators. Nil store,
// publisher or cache disable that concern.
func NewAnalyzer(
	cfg *config.Config,
	market drepo.MarketData,
	artifacts drepo.ArtifactStore,
	store drepo.ReportStore,
	publisher drepo.ReportPublisher,
	cacheSvc cache.Service,
	metrics drepo.Metrics,
	log *logger.Logger,
) *Analyzer {
	return &Analyzer{
		market:    market,
		artifacts: artifacts,
		store:     store,
		publisher: publisher,
		cache:     cacheSvc,
		metrics:   metrics,
		detector: anomaly.NewDetector(
			anomaly.WithContamination(cfg.Analysis.Contamination),
			anomaly.WithSeed(cfg.Analysis.RandomSeed),
		),
		log:              log,
		defaultDays:      cfg.Analysis.DefaultDays,
		horizon:          cfg.Analysis.ForecastHorizon,
		defaultSentiment: cfg.Analysis.Sentiment,
		cacheTTL:         cfg.Cache.TTL,
	}
}

// Analyze runs the pipeline for one request.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error) {
	start := time.Now()
	ticker := util.NormalizeTicker(req.Ticker)
	days := req.Days
	if days <= 0 {
		days = a.defaultDays
	}
	sentiment := a.defaultSentiment
	if req.Sentiment != nil {
		sentiment = *req.Sentiment
	}

	cacheKey := cache.GenerateKeyWithParams("analysis", ticker, days, sentiment)
	if a.cache != nil && !req.Refresh {
		if cached, ok, err := cache.GetTyped[models.AnalysisResult](ctx, a.cache, cacheKey); err == nil && ok {
			a.log.Debug("analysis cache hit", logger.String("ticker", ticker))
			return &cached, nil
		}
	}

	report, err := a.compute(ctx, ticker, days, sentiment)
	if err != nil {
		a.metrics.RecordError("analysis")
		a.metrics.RecordAnalysis(ticker, "error")
		return nil, err
	}

	files := a.persist(ctx, report)

	a.metrics.RecordAnalysis(ticker, string(report.Recommendation.Overall))
	a.metrics.RecordLastPrice(ticker, report.CurrentPrice)
	for _, s := range report.Recommendation.Signals {
		a.metrics.RecordSignal(s.Indicator, string(s.Direction))
	}

	result := &models.AnalysisResult{
		Report:        report,
		OutputFiles:   files,
		ExecutionTime: time.Since(start).Seconds(),
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, cacheKey, result, a.cacheTTL); err != nil {
			a.log.Warn("cache analysis result", logger.Error(err))
		}
	}

	a.log.Info("analysis complete",
		logger.String("ticker", ticker),
		logger.String("recommendation", string(report.Recommendation.Overall)),
		logger.String("regime", string(report.Regime)),
		logger.Int("signals", len(report.Recommendation.Signals)),
		logger.Float64("duration_seconds", result.ExecutionTime),
	)
	return result, nil
}

// compute runs the pure pipeline over a freshly fetched window.
func (a *Analyzer) compute(ctx context.Context, ticker string, days int, sentiment float64) (*models.AnalysisReport, error) {
	from, to := util.DaysRange(time.Now(), days)

	fetchStart := time.Now()
	points, err := a.market.History(ctx, ticker, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", ticker, err)
	}
	a.metrics.RecordStageLatency("fetch", time.Since(fetchStart).Seconds())

	company, err := a.market.CompanyInfo(ctx, ticker)
	if err != nil {
		// metadata is cosmetic; the report still carries the ticker
		a.log.Warn("company info unavailable", logger.String("ticker", ticker), logger.Error(err))
		company = models.CompanyInfo{Ticker: ticker, Name: ticker}
	}

	s, err := series.New(points)
	if err != nil {
		return nil, fmt.Errorf("build series %s: %w", ticker, err)
	}

	// Independent stages fan out; synthesis joins on all of them.
	var (
		wg         sync.WaitGroup
		set        models.IndicatorSet
		scores     models.PatternScores
		regime     models.Regime
		recs       []models.AnomalyRecord
		projection []float64
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		t := time.Now()
		set = indicators.Compute(s)
		a.metrics.RecordStageLatency("indicators", time.Since(t).Seconds())
	}()
	go func() {
		defer wg.Done()
		t := time.Now()
		scores = patterns.Detect(s)
		regime = patterns.Classify(s)
		a.metrics.RecordStageLatency("patterns", time.Since(t).Seconds())
	}()
	go func() {
		defer wg.Done()
		t := time.Now()
		recs = a.detector.Detect(s)
		a.metrics.RecordStageLatency("anomalies", time.Since(t).Seconds())
	}()
	go func() {
		defer wg.Done()
		t := time.Now()
		projection = a.project(s)
		a.metrics.RecordStageLatency("forecast", time.Since(t).Seconds())
	}()
	wg.Wait()

	support, resistance := signals.SupportResistance(s)
	recommendation := signals.Synthesize(set, s.LastClose(), time.Now().UTC(), models.SentimentAnalysis{
		OverallScore: sentiment,
	}, support, resistance)

	return &models.AnalysisReport{
		Ticker:         ticker,
		Company:        company,
		GeneratedAt:    time.Now().UTC(),
		CurrentPrice:   s.LastClose(),
		Indicators:     set,
		Recommendation: recommendation,
		Patterns:       scores,
		Regime:         regime,
		Anomalies:      recs,
		Forecast:       projection,
		PriceStats:     indicators.PriceStatistics(s.Closes()),
		Volume:         indicators.VolumeProfile(s.Volumes()),
		Points:         s.Points(),
	}, nil
}

// project degrades to repeating the last close if the fit is unusable.
func (a *Analyzer) project(s *series.Series) []float64 {
	return forecast.Project(s, a.horizon)
}

// persist writes artifacts and fans the report out to the optional sinks.
// Only the artifact map is surfaced; sink failures degrade to logs.
func (a *Analyzer) persist(ctx context.Context, report *models.AnalysisReport) map[string]string {
	persistStart := time.Now()
	defer func() {
		a.metrics.RecordStageLatency("persist", time.Since(persistStart).Seconds())
	}()

	files, err := a.artifacts.Save(report)
	if err != nil {
		a.metrics.RecordError("artifacts")
		a.log.Error("write artifacts", logger.String("ticker", report.Ticker), logger.Error(err))
		files = map[string]string{}
	}

	if a.store != nil {
		if err := a.store.Store(ctx, report); err != nil {
			a.metrics.RecordError("store")
			a.log.Error("store analysis run", logger.String("ticker", report.Ticker), logger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, report); err != nil {
			a.metrics.RecordError("publish")
			a.log.Error("publish analysis run", logger.String("ticker", report.Ticker), logger.Error(err))
		}
	}
	return files
}
