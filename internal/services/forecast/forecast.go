// Package forecast projects the close series ahead with an ordinary
// least-squares line over a 0-based index. Forecasts are point estimates
// only; no interval accompanies them.
package forecast

import "StockPulse/internal/series"

// DefaultHorizon is the number of steps projected when callers pass no
// explicit horizon.
const DefaultHorizon = 5

// Project fits close = a + b*index over the full window and evaluates the
// line at the next horizon index positions. A window with a single point
// cannot pin a slope; the projection degrades to repeating the last close.
func Project(s *series.Series, horizon int) []float64 {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	closes := s.Closes()
	n := len(closes)

	out := make([]float64, horizon)
	if n < 2 {
		for i := range out {
			out[i] = closes[n-1]
		}
		return out
	}

	intercept, slope := fitLine(closes)
	for i := range out {
		out[i] = intercept + slope*float64(n+i)
	}
	return out
}

// fitLine returns the OLS intercept and slope of ys against 0..len-1.
func fitLine(ys []float64) (intercept, slope float64) {
	n := float64(len(ys))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return ys[len(ys)-1], 0
	}
	slope = (n*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / n
	return intercept, slope
}

// Evaluate returns the fitted value at a given index, exposed for in-sample
// checks against the observed series.
func Evaluate(ys []float64, index int) float64 {
	intercept, slope := fitLine(ys)
	return intercept + slope*float64(index)
}
