package signals

import (
	"math"
	"sort"

	"StockPulse/internal/series"
)

const levelsWindow = 20

// SupportResistance extracts the three most recent distinct support and
// resistance levels: centered 20-period local lows of the low column and
// local highs of the high column, rounded to cents, ascending. Windows too
// short to center a full window yield empty levels.
func SupportResistance(s *series.Series) (support, resistance []float64) {
	support = recentLevels(s.Lows(), false)
	resistance = recentLevels(s.Highs(), true)
	return support, resistance
}

// recentLevels flags positions that are the extremum of the full centered
// window around them, then keeps the 3 most recent flagged values.
func recentLevels(xs []float64, wantMax bool) []float64 {
	left := levelsWindow / 2
	right := levelsWindow - left - 1

	var flagged []float64
	for i := left; i+right < len(xs); i++ {
		ext := xs[i-left]
		for j := i - left + 1; j <= i+right; j++ {
			if wantMax && xs[j] > ext {
				ext = xs[j]
			}
			if !wantMax && xs[j] < ext {
				ext = xs[j]
			}
		}
		if xs[i] == ext {
			flagged = append(flagged, round2(xs[i]))
		}
	}

	if len(flagged) > 3 {
		flagged = flagged[len(flagged)-3:]
	}
	return sortedDistinct(flagged)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortedDistinct(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	sort.Float64s(out)
	return out
}
