package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/logger"

	"github.com/gorilla/websocket"
)

// Stream implements QuoteStream over a streaming quote WebSocket feed.
type Stream struct {
	url            string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	log            *logger.Logger

	conn      *websocket.Conn
	connected bool
}

// NewStream creates a quote stream for the configured symbol set.
func NewStream(url string, symbols []string, reconnectDelay, pingInterval time.Duration, log *logger.Logger) drepo.QuoteStream {
	if reconnectDelay <= 0 {
		reconnectDelay = 5 * time.Second
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Stream{
		url:            url,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		log:            log,
	}
}

// Connect establishes the WebSocket connection.
func (s *Stream) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("quote stream connect: %w", err)
	}
	s.conn = conn
	s.connected = true
	s.log.Info("quote stream connected", logger.String("url", s.url))
	return nil
}

// Subscribe subscribes to the configured symbols.
func (s *Stream) Subscribe(ctx context.Context) error {
	if s.conn == nil || !s.connected {
		return fmt.Errorf("quote stream not connected")
	}
	msg := map[string][]string{"subscribe": s.symbols}
	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("quote stream subscribe: %w", err)
	}
	s.log.Info("quote stream subscribed", logger.Strings("symbols", s.symbols))
	return nil
}

type streamQuote struct {
	ID            string  `json:"id"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	DayVolume     float64 `json:"dayVolume"`
	Time          int64   `json:"time"` // ms
}

// Read streams quote updates and errors until the context is canceled or
// the connection drops. Updates are dropped on backpressure rather than
// blocking the read loop. Both goroutines are pinned to the connection
// current at call time and exit together when it dies, so a later Read
// against a reconnected stream never shares a conn with stale loops.
func (s *Stream) Read(ctx context.Context) (<-chan *models.Quote, <-chan error) {
	quotes := make(chan *models.Quote, 1024)
	errs := make(chan error, 1)
	conn := s.conn
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				if conn != nil {
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	go func() {
		defer close(done)
		defer close(quotes)
		defer close(errs)
		if conn == nil {
			errs <- fmt.Errorf("quote stream conn nil")
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				_, b, err := conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("quote stream read: %w", err)
					return
				}
				var q streamQuote
				if err := json.Unmarshal(b, &q); err != nil || q.ID == "" {
					// ignore non-quote frames
					continue
				}
				quote := &models.Quote{
					Ticker:        q.ID,
					Price:         q.Price,
					ChangePercent: q.ChangePercent,
					Volume:        q.DayVolume,
					AsOf:          time.Unix(q.Time/1000, 0).UTC(),
				}
				select {
				case quotes <- quote:
				default:
					// drop on backpressure
				}
			}
		}
	}()

	return quotes, errs
}

// Reconnect closes and re-establishes the connection and subscriptions.
func (s *Stream) Reconnect(ctx context.Context) error {
	_ = s.Close()
	time.Sleep(s.reconnectDelay)
	if err := s.Connect(ctx); err != nil {
		return err
	}
	return s.Subscribe(ctx)
}

// Close closes the WebSocket connection.
func (s *Stream) Close() error {
	s.connected = false
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (s *Stream) IsConnected() bool { return s.connected }
