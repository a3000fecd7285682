package indicators

import (
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

// flatPoint is the canonical constant bar used across degenerate-case tests.
func flatPoint(day int) models.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.PricePoint{
		Timestamp: base.AddDate(0, 0, day),
		Open:      100,
		High:      105,
		Low:       95,
		Close:     102,
		Volume:    1e6,
	}
}

func TestTrueRangeFirstPointUsesHighLow(t *testing.T) {
	tr := trueRanges([]float64{110}, []float64{90}, []float64{100})
	if len(tr) != 1 || tr[0] != 20 {
		t.Fatalf("trueRanges = %v, want [20]", tr)
	}
}

func TestTrueRangeGapUp(t *testing.T) {
	// Second bar gaps above the previous close: TR is |high - prevClose|.
	highs := []float64{100, 130}
	lows := []float64{90, 125}
	closes := []float64{95, 128}
	tr := trueRanges(highs, lows, closes)
	if !almostEqual(tr[1], 35, 1e-9) {
		t.Fatalf("gap-up TR = %v, want 35", tr[1])
	}
}

func TestATRConstantRange(t *testing.T) {
	n := 30
	highs := constantClose(n, 105)
	lows := constantClose(n, 95)
	closes := constantClose(n, 102)
	if got := ATR(highs, lows, closes, 14); !almostEqual(got, 10, 1e-9) {
		t.Fatalf("ATR = %v, want 10", got)
	}
}

func TestADXEqualsATR(t *testing.T) {
	highs := []float64{10, 12, 11, 14, 13, 15}
	lows := []float64{8, 9, 10, 11, 10, 12}
	closes := []float64{9, 11, 10.5, 13, 12, 14}
	if ADX(highs, lows, closes, 14) != ATR(highs, lows, closes, 14) {
		t.Fatalf("simplified ADX must equal ATR")
	}
}

func TestCCIFlatWindow(t *testing.T) {
	n := 25
	if got := CCI(constantClose(n, 105), constantClose(n, 95), constantClose(n, 100), 20); got != 0 {
		t.Fatalf("flat CCI = %v, want 0", got)
	}
}

func TestCCILinearRise(t *testing.T) {
	// Typical prices 1..20: SMA 10.5, mean abs deviation 5,
	// CCI = (20-10.5)/(0.015*5) = 126.67.
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		v := float64(i + 1)
		highs[i], lows[i], closes[i] = v, v, v
	}
	if got := CCI(highs, lows, closes, 20); !almostEqual(got, 9.5/0.075, 1e-9) {
		t.Fatalf("CCI = %v, want %v", got, 9.5/0.075)
	}
}

func TestStochasticKExtremes(t *testing.T) {
	highs := []float64{110, 112, 115}
	lows := []float64{100, 102, 105}
	closeAtHigh := []float64{105, 108, 115}
	if got := StochasticK(highs, lows, closeAtHigh, 14); !almostEqual(got, 100, 1e-9) {
		t.Fatalf("%%K at highest high = %v, want 100", got)
	}
	closeAtLow := []float64{105, 108, 100}
	if got := StochasticK(highs, lows, closeAtLow, 14); !almostEqual(got, 0, 1e-9) {
		t.Fatalf("%%K at lowest low = %v, want 0", got)
	}
}

func TestStochasticKFlatWindow(t *testing.T) {
	n := 20
	if got := StochasticK(constantClose(n, 100), constantClose(n, 100), constantClose(n, 100), 14); got != 50 {
		t.Fatalf("flat %%K = %v, want 50", got)
	}
}

func TestWilliamsRExtremes(t *testing.T) {
	highs := []float64{110, 112, 115}
	lows := []float64{100, 102, 105}
	closeAtHigh := []float64{105, 108, 115}
	if got := WilliamsR(highs, lows, closeAtHigh, 14); !almostEqual(got, 0, 1e-9) {
		t.Fatalf("%%R at highest high = %v, want 0", got)
	}
	closeAtLow := []float64{105, 108, 100}
	if got := WilliamsR(highs, lows, closeAtLow, 14); !almostEqual(got, -100, 1e-9) {
		t.Fatalf("%%R at lowest low = %v, want -100", got)
	}
}

func TestWilliamsRFlatWindow(t *testing.T) {
	n := 20
	if got := WilliamsR(constantClose(n, 100), constantClose(n, 100), constantClose(n, 100), 14); got != -50 {
		t.Fatalf("flat %%R = %v, want -50", got)
	}
}

func TestMFIRisingFlowIsNeutralFallback(t *testing.T) {
	// Strictly rising typical prices have zero negative flow; the policy is
	// neutral 50, matching RSI.
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	vols := make([]float64, n)
	for i := 0; i < n; i++ {
		v := 100 + float64(i)
		highs[i], lows[i], closes[i] = v+1, v-1, v
		vols[i] = 1000
	}
	if got := MFI(highs, lows, closes, vols, 14); got != 50 {
		t.Fatalf("MFI with zero negative flow = %v, want 50", got)
	}
}

func TestMFIBounds(t *testing.T) {
	highs := []float64{101, 103, 102, 105, 104, 106, 103, 107}
	lows := []float64{99, 100, 100, 102, 101, 103, 101, 104}
	closes := []float64{100, 102, 101, 104, 103, 105, 102, 106}
	vols := []float64{1000, 1200, 900, 1500, 1100, 1300, 800, 1400}
	got := MFI(highs, lows, closes, vols, 14)
	if got < 0 || got > 100 {
		t.Fatalf("MFI out of range: %v", got)
	}
}

func TestOBVSignsByCloseDirection(t *testing.T) {
	closes := []float64{10, 11, 10, 10}
	vols := []float64{1, 2, 3, 4}
	// +2 (up) -3 (down) +0 (flat) = -1
	if got := OBV(closes, vols); !almostEqual(got, -1, 1e-9) {
		t.Fatalf("OBV = %v, want -1", got)
	}
}

func TestVolatilityIndexFlat(t *testing.T) {
	if got := VolatilityIndex(constantClose(100, 102)); got != 0 {
		t.Fatalf("flat volatility index = %v, want 0", got)
	}
}

func TestVolatilityIndexPositive(t *testing.T) {
	closes := []float64{100, 110, 95, 108, 99, 112}
	got := VolatilityIndex(closes)
	if got <= 0 {
		t.Fatalf("volatility index = %v, want > 0 for a moving series", got)
	}
}
