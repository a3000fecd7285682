package indicators

import "math"

// trueRanges computes the per-point true range. The first point has no
// previous close and uses the plain high-low range.
func trueRanges(highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		tr := highs[i] - lows[i]
		if i > 0 {
			prev := closes[i-1]
			tr = math.Max(tr, math.Abs(highs[i]-prev))
			tr = math.Max(tr, math.Abs(lows[i]-prev))
		}
		out[i] = tr
	}
	return out
}

// ATR returns the rolling mean of the true range over the last periods points.
func ATR(highs, lows, closes []float64, periods int) float64 {
	tr := trueRanges(highs, lows, closes)
	return mean(tail(tr, effective(len(tr), periods)))
}

// ADX here is a deliberate simplification: it is the same rolling mean of
// true range as ATR, not the textbook directional-movement index. The
// simplified value is part of the report contract and must not be replaced
// with the full +DI/-DI computation.
func ADX(highs, lows, closes []float64, periods int) float64 {
	return ATR(highs, lows, closes, periods)
}

// CCI returns the commodity channel index over the last window typical
// prices. A zero mean absolute deviation (flat window) yields 0.
func CCI(highs, lows, closes []float64, window int) float64 {
	tp := typicalPrices(highs, lows, closes)
	win := tail(tp, effective(len(tp), window))
	sma := mean(win)
	mad := meanAbsDev(win, sma)
	if mad == 0 {
		return 0
	}
	return (tp[len(tp)-1] - sma) / (0.015 * mad)
}

// StochasticK returns the %K oscillator over the last periods points.
// A flat window (highest high equals lowest low) yields neutral 50.
func StochasticK(highs, lows, closes []float64, periods int) float64 {
	w := effective(len(closes), periods)
	hh := maxOf(tail(highs, w))
	ll := minOf(tail(lows, w))
	if hh == ll {
		return 50
	}
	return 100 * (closes[len(closes)-1] - ll) / (hh - ll)
}

// WilliamsR returns the Williams %R oscillator over the last periods points.
// A flat window yields the midpoint -50.
func WilliamsR(highs, lows, closes []float64, periods int) float64 {
	w := effective(len(closes), periods)
	hh := maxOf(tail(highs, w))
	ll := minOf(tail(lows, w))
	if hh == ll {
		return -50
	}
	return -100 * (hh - closes[len(closes)-1]) / (hh - ll)
}

// MFI returns the money flow index: an RSI analogue over typical-price
// volume flow, split by typical-price direction. Zero negative flow yields
// neutral 50, matching the RSI degenerate policy.
func MFI(highs, lows, closes, volumes []float64, periods int) float64 {
	if len(closes) < 2 {
		return 50
	}
	tp := typicalPrices(highs, lows, closes)
	p := effective(len(tp)-1, periods)
	var pos, neg float64
	for i := len(tp) - p; i < len(tp); i++ {
		flow := tp[i] * volumes[i]
		switch {
		case tp[i] > tp[i-1]:
			pos += flow
		case tp[i] < tp[i-1]:
			neg += flow
		}
	}
	if neg == 0 {
		return 50
	}
	return 100 - 100/(1+pos/neg)
}
