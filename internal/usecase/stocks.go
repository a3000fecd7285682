package usecase

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/cache"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

const quoteCacheTTL = 30 * time.Second

// Stocks serves the lookup endpoints around the analysis pipeline: live
// quotes, ticker search and persisted run history.
type Stocks struct {
	market  drepo.MarketData
	store   drepo.ReportStore // optional
	cache   cache.Service     // optional
	metrics drepo.Metrics
	log     *logger.Logger
}

// NewStocks creates the lookup usecase. A nil store disables run history.
func NewStocks(market drepo.MarketData, store drepo.ReportStore, cacheSvc cache.Service, metrics drepo.Metrics, log *logger.Logger) *Stocks {
	return &Stocks{market: market, store: store, cache: cacheSvc, metrics: metrics, log: log}
}

// Quote returns a snapshot for one ticker, briefly cached.
func (s *Stocks) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	ticker = util.NormalizeTicker(ticker)
	key := cache.GenerateKey("quote", ticker)

	if s.cache != nil {
		if cached, ok, err := cache.GetTyped[models.Quote](ctx, s.cache, key); err == nil && ok {
			return &cached, nil
		}
	}

	q, err := s.market.Quote(ctx, ticker)
	if err != nil {
		s.metrics.RecordError("quote")
		return nil, fmt.Errorf("quote %s: %w", ticker, err)
	}
	s.metrics.RecordLastPrice(ticker, q.Price)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, q, quoteCacheTTL); err != nil {
			s.log.Warn("cache quote", logger.Error(err))
		}
	}
	return &q, nil
}

// Search resolves a free-text query to ticker candidates.
func (s *Stocks) Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error) {
	if util.LooksLikeTicker(query) {
		query = util.NormalizeTicker(query)
	}
	matches, err := s.market.Search(ctx, query, limit)
	if err != nil {
		s.metrics.RecordError("search")
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return matches, nil
}

// History returns recent persisted analysis runs for a ticker. Without a
// report store it returns an empty list.
func (s *Stocks) History(ctx context.Context, ticker string, limit int) ([]models.RunSummary, error) {
	if s.store == nil {
		return []models.RunSummary{}, nil
	}
	runs, err := s.store.RecentRuns(ctx, util.NormalizeTicker(ticker), limit)
	if err != nil {
		s.metrics.RecordError("history")
		return nil, fmt.Errorf("run history %s: %w", ticker, err)
	}
	if runs == nil {
		runs = []models.RunSummary{}
	}
	return runs, nil
}
