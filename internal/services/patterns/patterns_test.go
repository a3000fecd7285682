package patterns

import (
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/series"
)

func mkSeries(t *testing.T, closes []float64, spread float64) *series.Series {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = models.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c + spread,
			Low:       c - spread,
			Close:     c,
			Volume:    1e6,
		}
	}
	s, err := series.New(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestDetectShortSeriesOmitsAll(t *testing.T) {
	scores := Detect(mkSeries(t, flat(10, 100), 5))
	if scores.DoubleBottom != nil || scores.HeadAndShoulders != nil || scores.Triangle != nil || scores.Channel != nil {
		t.Fatalf("expected all scores omitted for 10 points, got %+v", scores)
	}
}

func TestDetectMinimumLengths(t *testing.T) {
	scores := Detect(mkSeries(t, flat(25, 100), 5))
	if scores.DoubleBottom == nil || scores.Triangle == nil || scores.Channel == nil {
		t.Fatalf("expected 20-point detectors present at 25 points, got %+v", scores)
	}
	if scores.HeadAndShoulders != nil {
		t.Fatalf("head-and-shoulders needs 30 points, got %+v at 25", scores.HeadAndShoulders)
	}
}

func TestDoubleBottomFlatSeries(t *testing.T) {
	// Every interior point of a flat series is a repeated local low.
	scores := Detect(mkSeries(t, flat(40, 100), 5))
	if scores.DoubleBottom == nil {
		t.Fatalf("double bottom missing")
	}
	if *scores.DoubleBottom <= 0 || *scores.DoubleBottom > 1 {
		t.Fatalf("double bottom score = %v, want in (0, 1]", *scores.DoubleBottom)
	}
}

func TestHeadAndShouldersFlatSeriesFalse(t *testing.T) {
	scores := Detect(mkSeries(t, flat(40, 5), 5))
	if scores.HeadAndShoulders == nil {
		t.Fatalf("head-and-shoulders missing at 40 points")
	}
	if *scores.HeadAndShoulders {
		t.Fatalf("flat series must not form a head-and-shoulders")
	}
}

func TestTriangleFlatSeriesIsZero(t *testing.T) {
	scores := Detect(mkSeries(t, flat(40, 5), 5))
	if scores.Triangle == nil {
		t.Fatalf("triangle missing")
	}
	// Zero spread cannot shrink any further.
	if *scores.Triangle != 0 {
		t.Fatalf("triangle score = %v, want 0 for flat series", *scores.Triangle)
	}
}

func TestChannelFlatSeriesIsPerfectlyStable(t *testing.T) {
	scores := Detect(mkSeries(t, flat(40, 5), 5))
	if scores.Channel == nil {
		t.Fatalf("channel missing")
	}
	if *scores.Channel != 1 {
		t.Fatalf("channel score = %v, want 1 for constant-width channel", *scores.Channel)
	}
}

func TestClassifyUnknownForSinglePoint(t *testing.T) {
	if got := Classify(mkSeries(t, []float64{100}, 1)); got != models.RegimeUnknown {
		t.Fatalf("regime = %v, want UNKNOWN", got)
	}
}

func TestClassifyFlatSeriesNeutral(t *testing.T) {
	if got := Classify(mkSeries(t, flat(50, 100), 1)); got != models.RegimeNeutral {
		t.Fatalf("regime = %v, want NEUTRAL", got)
	}
}

func TestClassifyBullishLowVolatility(t *testing.T) {
	// Mostly small gains with occasional tiny dips: positive trend, RSI
	// well above 60, daily volatility far below the 2% threshold.
	closes := []float64{1000}
	for i := 1; i < 60; i++ {
		prev := closes[i-1]
		if i%5 == 0 {
			closes = append(closes, prev-0.1)
			continue
		}
		closes = append(closes, prev+1)
	}
	if got := Classify(mkSeries(t, closes, 1)); got != models.RegimeBullish {
		t.Fatalf("regime = %v, want BULLISH", got)
	}
}

func TestClassifyBearishLowVolatility(t *testing.T) {
	closes := []float64{1000}
	for i := 1; i < 60; i++ {
		prev := closes[i-1]
		if i%5 == 0 {
			closes = append(closes, prev+0.1)
			continue
		}
		closes = append(closes, prev-1)
	}
	if got := Classify(mkSeries(t, closes, 1)); got != models.RegimeBearish {
		t.Fatalf("regime = %v, want BEARISH", got)
	}
}

func TestClassifyHighVolatility(t *testing.T) {
	// Alternating +5%/-5% days: volatility above threshold, trend near zero.
	closes := []float64{100}
	for i := 1; i < 60; i++ {
		prev := closes[i-1]
		if i%2 == 0 {
			closes = append(closes, prev*1.05)
			continue
		}
		closes = append(closes, prev*0.95)
	}
	if got := Classify(mkSeries(t, closes, 1)); got != models.RegimeHighVolatility {
		t.Fatalf("regime = %v, want HIGH_VOLATILITY", got)
	}
}
