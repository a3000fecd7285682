// Package series normalizes raw OHLCV points into the ordered window that
// every downstream computation consumes.
package series

import (
	"errors"
	"sort"

	"StockPulse/internal/domain/models"
)

// ErrEmpty is returned when a window would contain no usable points.
var ErrEmpty = errors.New("price series is empty")

// Series is a chronologically ordered, timestamp-deduplicated OHLCV window.
// Construct through New; the point slice is never mutated afterwards.
type Series struct {
	points []models.PricePoint
}

// New validates, sorts and deduplicates raw points into a Series.
// Points sharing a timestamp collapse to the last one seen in input order.
func New(points []models.PricePoint) (*Series, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	cp := make([]models.PricePoint, len(points))
	copy(cp, points)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Timestamp.Before(cp[j].Timestamp)
	})

	out := cp[:0]
	for _, p := range cp {
		if len(out) > 0 && out[len(out)-1].Timestamp.Equal(p.Timestamp) {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return &Series{points: out}, nil
}

// Len returns the number of points in the window.
func (s *Series) Len() int { return len(s.points) }

// Points returns the ordered window. Callers must not modify it.
func (s *Series) Points() []models.PricePoint { return s.points }

// Last returns the most recent point.
func (s *Series) Last() models.PricePoint { return s.points[len(s.points)-1] }

// LastClose returns the most recent closing price.
func (s *Series) LastClose() float64 { return s.points[len(s.points)-1].Close }

// Closes extracts the close column.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Close
	}
	return out
}

// Highs extracts the high column.
func (s *Series) Highs() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.High
	}
	return out
}

// Lows extracts the low column.
func (s *Series) Lows() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Low
	}
	return out
}

// Volumes extracts the volume column.
func (s *Series) Volumes() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Volume
	}
	return out
}

// Returns computes simple daily returns: r[i] = c[i]/c[i-1] - 1.
// Zero previous closes yield a zero return instead of an infinity.
func (s *Series) Returns() []float64 {
	closes := s.Closes()
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, closes[i]/closes[i-1]-1)
	}
	return out
}
