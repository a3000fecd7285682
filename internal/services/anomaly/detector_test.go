package anomaly

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/series"
)

func mkSeries(t *testing.T, n int, mutate func(i int, p *models.PricePoint)) *series.Series {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, n)
	for i := range points {
		points[i] = models.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Open:      100,
			High:      101,
			Low:       99,
			Close:     100,
			Volume:    1e6,
		}
		if mutate != nil {
			mutate(i, &points[i])
		}
	}
	s, err := series.New(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestDetectTinyWindowEmpty(t *testing.T) {
	d := NewDetector()
	got := d.Detect(mkSeries(t, 1, nil))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result for tiny window, got %v", got)
	}
}

func TestDetectCountMatchesContamination(t *testing.T) {
	n := 200
	d := NewDetector(WithContamination(0.1), WithSeed(42))
	got := d.Detect(mkSeries(t, n, func(i int, p *models.PricePoint) {
		// mild deterministic wiggle so features are not all identical
		p.Close = 100 + math.Sin(float64(i))*2
		p.High = p.Close + 1
		p.Low = p.Close - 1
		p.Volume = 1e6 + float64(i%7)*1e4
	}))
	want := int(math.Round(0.1 * float64(n)))
	if len(got) != want {
		t.Fatalf("flagged %d points, want %d (contamination 0.1 of %d)", len(got), want, n)
	}
}

func TestDetectStructuralProperties(t *testing.T) {
	d := NewDetector()
	got := d.Detect(mkSeries(t, 120, func(i int, p *models.PricePoint) {
		p.Close = 100 + math.Sin(float64(i)/3)*3
		p.High = p.Close + 1.5
		p.Low = p.Close - 1.5
		if i == 60 {
			p.Volume = 2e7 // one clear volume spike
		}
	}))
	if len(got) == 0 {
		t.Fatalf("expected some anomalies flagged")
	}
	for _, a := range got {
		switch a.Type {
		case models.AnomalyPriceJump, models.AnomalyVolumeSpike, models.AnomalyPatternBreak:
		default:
			t.Fatalf("unknown anomaly type %q", a.Type)
		}
		if a.Confidence < 0 || a.Confidence > 1 {
			t.Fatalf("confidence %v out of [0,1]", a.Confidence)
		}
		if a.Timestamp.IsZero() {
			t.Fatalf("anomaly missing timestamp")
		}
	}
}

func TestDetectDeterministicForFixedSeed(t *testing.T) {
	build := func() []models.AnomalyRecord {
		d := NewDetector(WithSeed(42))
		return d.Detect(mkSeries(t, 150, func(i int, p *models.PricePoint) {
			p.Close = 100 + math.Cos(float64(i)/5)*4
			p.High = p.Close + 2
			p.Low = p.Close - 2
		}))
	}
	a := build()
	b := build()
	if len(a) != len(b) {
		t.Fatalf("seeded runs disagree on count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded runs disagree at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestClassifyPrefersPriceJump(t *testing.T) {
	row := []float64{0.5, 0.5, 0}
	if got := classify(row, 0.1, 0.1); got != models.AnomalyPriceJump {
		t.Fatalf("classify = %v, want PRICE_JUMP when both deviate", got)
	}
}

func TestClassifyVolumeSpike(t *testing.T) {
	row := []float64{0.001, 3, 0}
	if got := classify(row, 0.1, 0.5); got != models.AnomalyVolumeSpike {
		t.Fatalf("classify = %v, want VOLUME_SPIKE", got)
	}
}

func TestClassifyPatternBreakFallback(t *testing.T) {
	row := []float64{0.001, 0.001, 0.5}
	if got := classify(row, 0.1, 0.1); got != models.AnomalyPatternBreak {
		t.Fatalf("classify = %v, want PATTERN_BREAK", got)
	}
}

func TestConfidenceCapped(t *testing.T) {
	if got := confidence([]float64{5, 5, 5}); got != 1 {
		t.Fatalf("confidence = %v, want capped at 1", got)
	}
	if got := confidence([]float64{0.3, -0.3, 0}); got != 0 {
		t.Fatalf("confidence = %v, want 0 for a zero-mean row", got)
	}
}
