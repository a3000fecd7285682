package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"StockPulse/pkg/logger"

	"github.com/gorilla/websocket"
)

// quoteServer upgrades to websocket, waits for one client message, sends the
// given frames, then holds the connection open until the client closes it.
func quoteServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
		for _, f := range frames {
			if err := c.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func newTestStream(t *testing.T, httpURL string) *Stream {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	wsURL := "ws" + strings.TrimPrefix(httpURL, "http")
	return NewStream(wsURL, []string{"AAPL"}, time.Millisecond, 50*time.Millisecond, log).(*Stream)
}

func TestReadDeliversQuotesAndSkipsOtherFrames(t *testing.T) {
	frames := []string{
		`{"type":"ack"}`,
		`{"id":"AAPL","price":123.45,"changePercent":1.2,"dayVolume":1000000,"time":1700000000000}`,
	}
	srv := quoteServer(t, frames)
	defer srv.Close()

	st := newTestStream(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := st.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer st.Close()
	if err := st.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !st.IsConnected() {
		t.Fatal("expected connected stream")
	}

	quotes, errs := st.Read(ctx)
	select {
	case q := <-quotes:
		if q.Ticker != "AAPL" || q.Price != 123.45 || q.ChangePercent != 1.2 {
			t.Fatalf("quote = %+v", q)
		}
		if q.AsOf.Unix() != 1700000000 {
			t.Fatalf("as_of = %v, want unix 1700000000", q.AsOf)
		}
	case err := <-errs:
		t.Fatalf("stream error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for quote")
	}
}

func TestReadLoopsExitWithTheirConnection(t *testing.T) {
	srv := quoteServer(t, nil)
	defer srv.Close()

	st := newTestStream(t, srv.URL)
	ctx := context.Background()

	before := runtime.NumGoroutine()
	for i := 0; i < 10; i++ {
		if err := st.Connect(ctx); err != nil {
			t.Fatalf("connect: %v", err)
		}
		quotes, errs := st.Read(ctx)
		if err := st.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
		for quotes != nil || errs != nil {
			select {
			case _, ok := <-quotes:
				if !ok {
					quotes = nil
				}
			case _, ok := <-errs:
				if !ok {
					errs = nil
				}
			}
		}
	}
	time.Sleep(200 * time.Millisecond)

	if after := runtime.NumGoroutine(); after > before+5 {
		t.Fatalf("goroutines grew from %d to %d across reconnect cycles", before, after)
	}
}
