// Package patterns scores heuristic chart patterns and tags the window with
// a market regime. The detectors are price-action heuristics, not fitted
// models; each one omits its score (nil) when the window is shorter than its
// minimum length.
package patterns

import (
	"math"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/series"
)

const (
	doubleBottomMinPoints     = 20
	headAndShouldersMinPoints = 30
	triangleMinPoints         = 20
	channelMinPoints          = 20

	localExtremumWindow = 5
	repeatLowShift      = 10
	shoulderShift       = 15
	headWindow          = 15
	convergenceShift    = 10
	channelWindow       = 20
)

// Detect scores all pattern heuristics over the window.
func Detect(s *series.Series) models.PatternScores {
	highs := s.Highs()
	lows := s.Lows()

	var out models.PatternScores
	if s.Len() >= doubleBottomMinPoints {
		v := doubleBottomScore(lows)
		out.DoubleBottom = &v
	}
	if s.Len() >= headAndShouldersMinPoints {
		v := headAndShoulders(highs)
		out.HeadAndShoulders = &v
	}
	if s.Len() >= triangleMinPoints {
		v := triangleScore(highs, lows)
		out.Triangle = &v
	}
	if s.Len() >= channelMinPoints {
		v := channelScore(highs, lows)
		out.Channel = &v
	}
	return out
}

// centeredMin returns the centered rolling minimum. Positions without a full
// window are marked undefined (NaN) and never match an equality test.
func centeredMin(xs []float64, window int) []float64 {
	return centeredRoll(xs, window, math.Min)
}

func centeredMax(xs []float64, window int) []float64 {
	return centeredRoll(xs, window, math.Max)
}

func centeredRoll(xs []float64, window int, pick func(a, b float64) float64) []float64 {
	half := window / 2
	out := make([]float64, len(xs))
	for i := range xs {
		if i < half || i+half >= len(xs) {
			out[i] = math.NaN()
			continue
		}
		v := xs[i-half]
		for j := i - half + 1; j <= i+half; j++ {
			v = pick(v, xs[j])
		}
		out[i] = v
	}
	return out
}

// doubleBottomScore is the fraction of points that sit on a centered 5-point
// low and repeat a low that also sat on one 10 periods earlier.
func doubleBottomScore(lows []float64) float64 {
	localMins := centeredMin(lows, localExtremumWindow)
	var hits int
	for i := repeatLowShift; i < len(lows); i++ {
		if lows[i] == localMins[i] && lows[i-repeatLowShift] == localMins[i-repeatLowShift] {
			hits++
		}
	}
	return float64(hits) / float64(len(lows))
}

// headAndShoulders reports a wider central peak exceeding two flanking
// shoulder peaks 15 periods apart.
func headAndShoulders(highs []float64) bool {
	peaks := centeredMax(highs, localExtremumWindow)
	var shoulders int
	for i := shoulderShift; i < len(highs); i++ {
		if highs[i] == peaks[i] && highs[i-shoulderShift] == peaks[i-shoulderShift] {
			shoulders++
		}
	}
	head := centeredMax(highs, headWindow)
	return shoulders > 0 && maxDefined(head) > maxDefined(peaks)
}

// triangleScore reports whether the spread of rolling highs and lows is
// shrinking relative to 10 periods prior: 1 when both converge, else 0.
func triangleScore(highs, lows []float64) float64 {
	rh := trailingMax(highs, localExtremumWindow)
	rl := trailingMin(lows, localExtremumWindow)
	if len(rh) <= convergenceShift || len(rl) <= convergenceShift {
		return 0
	}
	highsConverge := sampleStdev(rh) < sampleStdev(rh[:len(rh)-convergenceShift])
	lowsConverge := sampleStdev(rl) < sampleStdev(rl[:len(rl)-convergenceShift])
	if highsConverge && lowsConverge {
		return 1
	}
	return 0
}

// channelScore measures range stability: 1 - stdev(width)/mean(width) over
// the trailing 20-period high-low channel. A zero-width channel is perfectly
// stable and scores 1.
func channelScore(highs, lows []float64) float64 {
	top := trailingMax(highs, channelWindow)
	bottom := trailingMin(lows, channelWindow)
	widths := make([]float64, len(top))
	for i := range top {
		widths[i] = top[i] - bottom[i]
	}
	m := meanOf(widths)
	if m == 0 {
		return 1
	}
	return 1 - sampleStdev(widths)/m
}

// trailingMax returns rolling maxima for every position with a full trailing
// window; shorter prefixes are dropped rather than padded.
func trailingMax(xs []float64, window int) []float64 {
	if len(xs) < window {
		return nil
	}
	out := make([]float64, 0, len(xs)-window+1)
	for i := window - 1; i < len(xs); i++ {
		v := xs[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if xs[j] > v {
				v = xs[j]
			}
		}
		out = append(out, v)
	}
	return out
}

func trailingMin(xs []float64, window int) []float64 {
	if len(xs) < window {
		return nil
	}
	out := make([]float64, 0, len(xs)-window+1)
	for i := window - 1; i < len(xs); i++ {
		v := xs[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if xs[j] < v {
				v = xs[j]
			}
		}
		out = append(out, v)
	}
	return out
}

func maxDefined(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if !math.IsNaN(x) && x > m {
			m = x
		}
	}
	return m
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sampleStdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := meanOf(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
