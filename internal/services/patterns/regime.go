package patterns

import (
	"math"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/series"
	"StockPulse/internal/services/indicators"
)

const volatileThreshold = 0.02

// Classify tags the window with a single regime from the volatility of daily
// returns, the mean return (trend) and RSI(14). Windows too short to form a
// return are UNKNOWN.
func Classify(s *series.Series) models.Regime {
	returns := s.Returns()
	if len(returns) == 0 {
		return models.RegimeUnknown
	}
	volatility := popStdev(returns)
	trend := meanOf(returns)
	rsi := indicators.RSI(s.Closes(), 14)

	if volatility > volatileThreshold {
		switch {
		case trend > 0 && rsi > 70:
			return models.RegimeBullishVolatile
		case trend < 0 && rsi < 30:
			return models.RegimeBearishVolatile
		default:
			return models.RegimeHighVolatility
		}
	}
	switch {
	case trend > 0 && rsi > 60:
		return models.RegimeBullish
	case trend < 0 && rsi < 40:
		return models.RegimeBearish
	default:
		return models.RegimeNeutral
	}
}

// popStdev is the population standard deviation (N denominator), the
// convention the regime volatility threshold was calibrated against.
func popStdev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := meanOf(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}
