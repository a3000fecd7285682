// Package api exposes the stock analysis endpoints over echo.
package api

import (
	"net/http"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StocksHandler serves quote, analysis, history and search endpoints.
type StocksHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	stocks   *usecase.Stocks
	store    drepo.ReportStore // optional, health only
	stream   drepo.QuoteStream // optional, health only
}

func NewStocksHandler(
	logger *xlogger.Logger,
	analyzer *usecase.Analyzer,
	stocks *usecase.Stocks,
	store drepo.ReportStore,
	stream drepo.QuoteStream,
) *StocksHandler {
	return &StocksHandler{
		logger:   logger,
		analyzer: analyzer,
		stocks:   stocks,
		store:    store,
		stream:   stream,
	}
}

func (h *StocksHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api/v1")
	g.GET("/stock/:ticker", h.Quote)
	g.GET("/stock/:ticker/analysis", h.Analyze)
	g.GET("/stock/:ticker/history", h.History)
	g.GET("/search/:query", h.Search)
}

// Quote returns a point-in-time snapshot for a ticker.
func (h *StocksHandler) Quote(c echo.Context) error {
	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.stocks.Quote(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("quote usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamErrorf("quote unavailable for %s", req.Ticker).WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Analyze runs the full analysis pipeline for a ticker.
func (h *StocksHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analysis usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamErrorf("analysis failed for %s", req.Ticker).WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// History returns persisted analysis runs for a ticker.
func (h *StocksHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	runs, err := h.stocks.History(c.Request().Context(), req.Ticker, req.Limit)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, runs, int64(len(runs)))
}

// Search resolves a free-text query to ticker candidates.
func (h *StocksHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	matches, err := h.stocks.Search(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		h.logger.Error("search usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamErrorf("search unavailable").WithError(err))
	}
	return xhttp.ListResponse(c, matches, int64(len(matches)))
}

// Health reports component status. The service is healthy as long as the
// HTTP layer answers; optional sinks report their own state.
func (h *StocksHandler) Health(c echo.Context) error {
	components := map[string]string{"http": "ok"}

	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			components["clickhouse"] = "unreachable"
		} else {
			components["clickhouse"] = "ok"
		}
	}
	if h.stream != nil {
		if h.stream.IsConnected() {
			components["stream"] = "connected"
		} else {
			components["stream"] = "disconnected"
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"components": components,
	})
}
