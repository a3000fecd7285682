package forecast

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/series"
)

func mkSeries(t *testing.T, closes []float64) *series.Series {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = models.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c, High: c, Low: c, Close: c, Volume: 1000,
		}
	}
	s, err := series.New(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestProjectContinuesPerfectLine(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + 2*float64(i)
	}
	got := Project(mkSeries(t, closes), 5)
	if len(got) != 5 {
		t.Fatalf("forecast length = %d, want 5", len(got))
	}
	for i, v := range got {
		want := 100 + 2*float64(30+i)
		if math.Abs(v-want) > 1e-6 {
			t.Fatalf("forecast[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestProjectConstantSeries(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 102
	}
	for i, v := range Project(mkSeries(t, closes), 5) {
		if math.Abs(v-102) > 1e-9 {
			t.Fatalf("forecast[%d] = %v, want 102", i, v)
		}
	}
}

func TestProjectSinglePointRepeatsLastClose(t *testing.T) {
	got := Project(mkSeries(t, []float64{42}), 5)
	for i, v := range got {
		if v != 42 {
			t.Fatalf("forecast[%d] = %v, want repeated last close 42", i, v)
		}
	}
}

func TestProjectDefaultHorizon(t *testing.T) {
	got := Project(mkSeries(t, []float64{1, 2, 3}), 0)
	if len(got) != DefaultHorizon {
		t.Fatalf("forecast length = %d, want default %d", len(got), DefaultHorizon)
	}
}

func TestEvaluateInSampleRoundTrip(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 10 + 0.5*float64(i)
	}
	for i := range closes {
		if got := Evaluate(closes, i); math.Abs(got-closes[i]) > 1e-6 {
			t.Fatalf("in-sample fit at %d = %v, want %v", i, got, closes[i])
		}
	}
}
