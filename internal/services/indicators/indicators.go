// Package indicators computes technical indicators over an OHLCV window.
//
// Every function follows the largest-usable-window policy: a nominal window
// W over a series of length N computes with min(N, W) observations, so
// indicators are always defined for a non-empty series. Every ratio is
// guarded against a zero denominator with a documented fallback; no function
// returns NaN or an infinity.
package indicators

import (
	"sync"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/series"
)

const (
	smaShort  = 20
	smaMedium = 50
	smaLong   = 200

	rsiPeriods = 14

	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9

	bollingerWindow = 20
	bollingerStd    = 2

	atrPeriods        = 14
	cciWindow         = 20
	stochasticPeriods = 14
	williamsPeriods   = 14
	mfiPeriods        = 14
	volumeEMASpan     = 20
)

// SMA returns the arithmetic mean of the last window closes.
func SMA(closes []float64, window int) float64 {
	return mean(tail(closes, effective(len(closes), window)))
}

// SMASeries returns the rolling mean aligned to the input. Positions before
// the window fills use the expanding prefix mean so the series stays finite.
func SMASeries(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	var sum float64
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
			out[i] = sum / float64(window)
			continue
		}
		out[i] = sum / float64(i+1)
	}
	return out
}

// EMA returns the last value of the exponential moving average with
// smoothing factor 2/(span+1), seeded by the first observation.
func EMA(values []float64, span int) float64 {
	s := EMASeries(values, span)
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// EMASeries returns the full recursive EMA series, seeded by the first value.
func EMASeries(values []float64, span int) []float64 {
	if len(values) == 0 {
		return nil
	}
	alpha := 2.0 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSI returns the relative strength index over the last periods deltas.
// When the average loss is zero (flat or strictly rising window) the value
// is defined as neutral 50; the division-by-zero branch is never taken.
func RSI(closes []float64, periods int) float64 {
	if len(closes) < 2 {
		return 50
	}
	p := effective(len(closes)-1, periods)
	deltas := make([]float64, 0, p)
	for i := len(closes) - p; i < len(closes); i++ {
		deltas = append(deltas, closes[i]-closes[i-1])
	}
	var gain, loss float64
	for _, d := range deltas {
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 50
	}
	rs := gain / loss
	return 100 - 100/(1+rs)
}

// RSISeries returns a per-point RSI aligned to the input, computed over the
// deltas available at each position. The first point has no delta and is 50.
func RSISeries(closes []float64, periods int) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		out[i] = RSI(closes[:i+1], periods)
	}
	return out
}

// MACD computes the latest MACD line, signal line and histogram, plus the
// crossover detected between the last two points.
func MACD(closes []float64) models.MACDState {
	line, signal := MACDSeries(closes)
	n := len(line)
	if n == 0 {
		return models.MACDState{}
	}
	st := models.MACDState{
		Line:      line[n-1],
		Signal:    signal[n-1],
		Histogram: line[n-1] - signal[n-1],
	}
	if n >= 2 {
		switch {
		case line[n-1] > signal[n-1] && line[n-2] <= signal[n-2]:
			st.Crossover = models.SignalBuy
		case line[n-1] < signal[n-1] && line[n-2] >= signal[n-2]:
			st.Crossover = models.SignalSell
		}
	}
	return st
}

// MACDSeries returns the aligned MACD line and signal line series.
func MACDSeries(closes []float64) (line, signal []float64) {
	fast := EMASeries(closes, macdFast)
	slow := EMASeries(closes, macdSlow)
	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal = EMASeries(line, macdSignal)
	return line, signal
}

// Bollinger computes the latest band state with window min(N, 20) and 2
// standard deviations. With fewer than 2 points the bands collapse onto the
// last close with bandwidth 0 and percent_b 0.5. A zero middle band yields
// bandwidth 0; coincident bands yield percent_b 0.5. percent_b is never
// clamped: price outside the bands reads below 0 or above 1.
func Bollinger(closes []float64) models.BandState {
	last := closes[len(closes)-1]
	w := effective(len(closes), bollingerWindow)
	if w < 2 {
		return models.BandState{Upper: last, Middle: last, Lower: last, Bandwidth: 0, PercentB: 0.5}
	}
	win := tail(closes, w)
	middle := mean(win)
	sd := stdev(win)
	upper := middle + bollingerStd*sd
	lower := middle - bollingerStd*sd

	st := models.BandState{Upper: upper, Middle: middle, Lower: lower}
	if middle != 0 {
		st.Bandwidth = (upper - lower) / middle
	}
	if upper != lower {
		st.PercentB = (last - lower) / (upper - lower)
	} else {
		st.PercentB = 0.5
	}
	return st
}

// BollingerSeries returns aligned upper/middle/lower band series for
// charting, with the same expanding warm-up as SMASeries.
func BollingerSeries(closes []float64) (upper, middle, lower []float64) {
	n := len(closes)
	upper = make([]float64, n)
	middle = make([]float64, n)
	lower = make([]float64, n)
	for i := range closes {
		w := effective(i+1, bollingerWindow)
		win := tail(closes[:i+1], w)
		m := mean(win)
		sd := stdev(win)
		middle[i] = m
		upper[i] = m + bollingerStd*sd
		lower[i] = m - bollingerStd*sd
	}
	return upper, middle, lower
}

// Compute derives the full indicator set for a window. Indicator groups are
// independent of each other, so they are evaluated concurrently and joined
// before returning.
func Compute(s *series.Series) models.IndicatorSet {
	closes := s.Closes()
	highs := s.Highs()
	lows := s.Lows()
	volumes := s.Volumes()

	var set models.IndicatorSet
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		set.SMA20 = SMA(closes, smaShort)
		set.SMA50 = SMA(closes, smaMedium)
		set.SMA200 = SMA(closes, smaLong)
		set.EMA12 = EMA(closes, macdFast)
		set.EMA26 = EMA(closes, macdSlow)
		set.RSI = RSI(closes, rsiPeriods)
		set.MACD = MACD(closes)
		set.Bollinger = Bollinger(closes)
	}()
	go func() {
		defer wg.Done()
		set.ATR = ATR(highs, lows, closes, atrPeriods)
		set.ADX = ADX(highs, lows, closes, atrPeriods)
		set.CCI = CCI(highs, lows, closes, cciWindow)
		set.StochasticK = StochasticK(highs, lows, closes, stochasticPeriods)
		set.WilliamsR = WilliamsR(highs, lows, closes, williamsPeriods)
	}()
	go func() {
		defer wg.Done()
		set.MFI = MFI(highs, lows, closes, volumes, mfiPeriods)
		set.OBV = OBV(closes, volumes)
		set.VolumeEMA = EMA(volumes, volumeEMASpan)
		set.VolatilityIndex = VolatilityIndex(closes)
	}()
	wg.Wait()

	set.Series = chartSeries(closes)
	return set
}

func chartSeries(closes []float64) models.IndicatorSeries {
	line, signal := MACDSeries(closes)
	upper, middle, lower := BollingerSeries(closes)
	return models.IndicatorSeries{
		SMA20:           SMASeries(closes, smaShort),
		SMA50:           SMASeries(closes, smaMedium),
		SMA200:          SMASeries(closes, smaLong),
		RSI:             RSISeries(closes, rsiPeriods),
		MACDLine:        line,
		MACDSignal:      signal,
		BollingerUpper:  upper,
		BollingerMiddle: middle,
		BollingerLower:  lower,
	}
}
