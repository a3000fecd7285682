// Package yahoo implements market data access against the Yahoo Finance
// chart and search endpoints.
package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/config"
	phttp "StockPulse/pkg/http"
)

// Yahoo rejects requests without a browser-like user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client implements MarketData over the Yahoo Finance REST endpoints.
type Client struct {
	baseURL   string
	searchURL string
	http      *phttp.Client
}

// New creates a Yahoo market data client from config.
func New(cfg *config.Config) drepo.MarketData {
	timeout := cfg.Yahoo.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   cfg.Yahoo.BaseURL,
		searchURL: cfg.Yahoo.SearchURL,
		http: phttp.NewClient(
			phttp.WithTimeout(timeout),
			phttp.WithDefaultHeaders(map[string]string{"User-Agent": userAgent}),
		),
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				LongName           string  `json:"longName"`
				ShortName          string  `json:"shortName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"chartPreviousClose"`
				FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) chart(ctx context.Context, ticker string, from, to time.Time) (*chartResponse, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method: phttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, ticker),
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(from.Unix(), 10)},
			"period2":  {strconv.FormatInt(to.Unix(), 10)},
			"interval": {"1d"},
			"events":   {"history"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s (%s)", ticker, resp.Chart.Error.Description, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: empty result", ticker)
	}
	return &resp, nil
}

// History fetches the daily OHLCV series for a ticker. Bars with a missing
// close are dropped; other missing fields fall back to the close.
func (c *Client) History(ctx context.Context, ticker string, from, to time.Time) ([]models.PricePoint, error) {
	resp, err := c.chart(ctx, ticker, from, to)
	if err != nil {
		return nil, err
	}
	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no quote columns", ticker)
	}
	quote := result.Indicators.Quote[0]

	points := make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		cl := deref(at(quote.Close, i), 0)
		if cl == 0 {
			continue
		}
		points = append(points, models.PricePoint{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      deref(at(quote.Open, i), cl),
			High:      deref(at(quote.High, i), cl),
			Low:       deref(at(quote.Low, i), cl),
			Close:     cl,
			Volume:    deref(at(quote.Volume, i), 0),
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no usable bars", ticker)
	}
	return points, nil
}

// Quote fetches a point-in-time snapshot from the chart metadata.
func (c *Client) Quote(ctx context.Context, ticker string) (models.Quote, error) {
	now := time.Now()
	resp, err := c.chart(ctx, ticker, now.AddDate(0, 0, -7), now)
	if err != nil {
		return models.Quote{}, err
	}
	meta := resp.Chart.Result[0].Meta

	q := models.Quote{
		Ticker: meta.Symbol,
		Name:   pickName(meta.LongName, meta.ShortName),
		Price:  meta.RegularMarketPrice,
		AsOf:   time.Unix(meta.RegularMarketTime, 0).UTC(),
	}
	if meta.PreviousClose != 0 {
		q.ChangePercent = (meta.RegularMarketPrice/meta.PreviousClose - 1) * 100
	}
	return q, nil
}

// CompanyInfo derives listing metadata from the chart metadata.
func (c *Client) CompanyInfo(ctx context.Context, ticker string) (models.CompanyInfo, error) {
	now := time.Now()
	resp, err := c.chart(ctx, ticker, now.AddDate(0, 0, -7), now)
	if err != nil {
		return models.CompanyInfo{}, err
	}
	meta := resp.Chart.Result[0].Meta
	return models.CompanyInfo{
		Name:             pickName(meta.LongName, meta.ShortName),
		Ticker:           meta.Symbol,
		FiftyTwoWeekHigh: meta.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  meta.FiftyTwoWeekLow,
	}, nil
}

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Search resolves a free-text query to ticker candidates.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error) {
	if limit <= 0 {
		limit = 5
	}
	var resp searchResponse
	err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method: phttp.MethodGet,
		URL:    c.searchURL,
		QueryParams: map[string][]string{
			"q":           {query},
			"quotesCount": {strconv.Itoa(limit)},
			"newsCount":   {"0"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo search %q: %w", query, err)
	}

	matches := make([]models.SearchMatch, 0, limit)
	for _, q := range resp.Quotes {
		if q.Symbol == "" {
			continue
		}
		matches = append(matches, models.SearchMatch{
			Symbol:   q.Symbol,
			Name:     pickName(q.LongName, q.ShortName),
			Exchange: q.Exchange,
			Type:     q.QuoteType,
		})
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func at(xs []*float64, i int) *float64 {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

func deref(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func pickName(long, short string) string {
	if long != "" {
		return long
	}
	return short
}
