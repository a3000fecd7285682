package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/handler/api"
	"StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    *api.StocksHandler
	stream     drepo.QuoteStream // optional
	metrics    drepo.Metrics
	chClient   *pkgch.Client      // optional
	producer   *pkgkafka.Producer // optional
	cacheSvc   cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler *api.StocksHandler,
	stream drepo.QuoteStream,
	metrics drepo.Metrics,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		stream:   stream,
		metrics:  metrics,
		chClient: chClient,
		producer: producer,
		cacheSvc: cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
		xhttp.WithRateLimit(a.cfg.Server.RateLimitRPS),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("env", a.cfg.Environment))

	// Live quote feed keeps the last-price gauges warm between analyses.
	if a.stream != nil {
		go a.runStream(ctx)
		a.log.Info("quote stream started", applogger.Strings("symbols", a.cfg.Yahoo.Symbols))
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// runStream pumps streaming quote updates into the metrics gauges,
// reconnecting until the context is canceled.
func (a *App) runStream(ctx context.Context) {
	if err := a.stream.Connect(ctx); err != nil {
		a.log.Error("quote stream connect error", applogger.Error(err))
		a.metrics.RecordError("stream")
		return
	}
	if err := a.stream.Subscribe(ctx); err != nil {
		a.log.Error("quote stream subscribe error", applogger.Error(err))
		a.metrics.RecordError("stream")
		return
	}

	for {
		quotes, errs := a.stream.Read(ctx)
		for quotes != nil || errs != nil {
			select {
			case <-ctx.Done():
				return
			case q, ok := <-quotes:
				if !ok {
					quotes = nil
					continue
				}
				a.metrics.RecordLastPrice(q.Ticker, q.Price)
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				a.log.Warn("quote stream error", applogger.Error(err))
				a.metrics.RecordError("stream")
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := a.stream.Reconnect(ctx); err != nil {
			a.log.Error("quote stream reconnect error", applogger.Error(err))
			a.metrics.RecordError("stream")
			return
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			a.log.Warn("quote stream close error", applogger.Error(err))
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
