package indicators

import (
	"sort"

	"StockPulse/internal/domain/models"
)

const recentVolumeDays = 5

// PriceStatistics summarizes the close column of a window.
func PriceStatistics(closes []float64) models.PriceStats {
	return models.PriceStats{
		Mean:   mean(closes),
		Std:    stdev(closes),
		Min:    minOf(closes),
		Max:    maxOf(closes),
		Median: median(closes),
	}
}

// VolumeProfile compares the mean of the last 5 volumes against the window
// average. A zero average (all-zero volume) yields a zero trend instead of
// a division by zero.
func VolumeProfile(volumes []float64) models.VolumeAnalysis {
	avg := mean(volumes)
	recent := mean(tail(volumes, recentVolumeDays))
	va := models.VolumeAnalysis{AverageVolume: avg, RecentVolume: recent}
	if avg != 0 {
		va.VolumeTrend = recent / avg
	}
	return va
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	cp := make([]float64, len(xs))
	copy(cp, xs)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 0 {
		return (cp[mid-1] + cp[mid]) / 2
	}
	return cp[mid]
}
