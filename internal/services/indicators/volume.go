package indicators

import "math"

const tradingDaysPerYear = 252

// OBV returns the cumulative on-balance volume: volume signed by the
// direction of the close-to-close change, flat days contributing 0.
func OBV(closes, volumes []float64) float64 {
	var obv float64
	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += volumes[i]
		case closes[i] < closes[i-1]:
			obv -= volumes[i]
		}
	}
	return obv
}

// VolatilityIndex returns the annualized standard deviation of log returns,
// in percent. Series with fewer than two points, or with non-positive
// closes that make a log return undefined, contribute nothing and a series
// without any usable return yields 0.
func VolatilityIndex(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i] <= 0 || closes[i-1] <= 0 {
			continue
		}
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}
	return stdev(rets) * math.Sqrt(tradingDaysPerYear) * 100
}
