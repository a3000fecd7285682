// Package signals folds an indicator set into discrete trading signals and
// an overall recommendation.
package signals

import (
	"math"
	"time"

	"StockPulse/internal/domain/models"
)

const (
	strongHistogramThreshold = 0.5

	rsiOversold   = 30
	rsiOverbought = 70

	bullishSentiment = 0.6
	bearishSentiment = 0.4
)

// Synthesize evaluates every rule against the indicator set, collects the
// emitted signals in rule order, and aggregates them with the sentiment
// composite into a Recommendation. Rules are independent; order affects
// presentation only.
func Synthesize(set models.IndicatorSet, price float64, now time.Time, sentiment models.SentimentAnalysis, support, resistance []float64) models.Recommendation {
	emitted := make([]models.Signal, 0, 3)

	if s, ok := macdRule(set, price, now); ok {
		emitted = append(emitted, s)
	}
	if s, ok := bollingerRule(set, price, now); ok {
		emitted = append(emitted, s)
	}
	if s, ok := rsiRule(set, price, now); ok {
		emitted = append(emitted, s)
	}

	overall, confidence := aggregate(emitted, sentiment.OverallScore)
	return models.Recommendation{
		Overall:          overall,
		Confidence:       confidence,
		Signals:          emitted,
		SupportLevels:    support,
		ResistanceLevels: resistance,
		Sentiment:        sentiment,
	}
}

func macdRule(set models.IndicatorSet, price float64, now time.Time) (models.Signal, bool) {
	if set.MACD.Crossover == "" {
		return models.Signal{}, false
	}
	strength := models.StrengthModerate
	if math.Abs(set.MACD.Histogram) > strongHistogramThreshold {
		strength = models.StrengthStrong
	}
	return models.Signal{
		Indicator:  "MACD",
		Direction:  set.MACD.Crossover,
		Strength:   strength,
		PriceLevel: price,
		Timestamp:  now,
		Details:    "MACD crossover detected",
	}, true
}

func bollingerRule(set models.IndicatorSet, price float64, now time.Time) (models.Signal, bool) {
	switch {
	case price <= set.Bollinger.Lower:
		return models.Signal{
			Indicator:  "Bollinger Bands",
			Direction:  models.SignalBuy,
			Strength:   models.StrengthStrong,
			PriceLevel: price,
			Timestamp:  now,
			Details:    "Price at lower Bollinger Band",
		}, true
	case price >= set.Bollinger.Upper:
		return models.Signal{
			Indicator:  "Bollinger Bands",
			Direction:  models.SignalSell,
			Strength:   models.StrengthStrong,
			PriceLevel: price,
			Timestamp:  now,
			Details:    "Price at upper Bollinger Band",
		}, true
	}
	return models.Signal{}, false
}

func rsiRule(set models.IndicatorSet, price float64, now time.Time) (models.Signal, bool) {
	switch {
	case set.RSI <= rsiOversold:
		return models.Signal{
			Indicator:  "RSI",
			Direction:  models.SignalBuy,
			Strength:   models.StrengthStrong,
			PriceLevel: price,
			Timestamp:  now,
			Details:    "RSI indicates oversold",
		}, true
	case set.RSI >= rsiOverbought:
		return models.Signal{
			Indicator:  "RSI",
			Direction:  models.SignalSell,
			Strength:   models.StrengthStrong,
			PriceLevel: price,
			Timestamp:  now,
			Details:    "RSI indicates overbought",
		}, true
	}
	return models.Signal{}, false
}

// aggregate counts buy-class against sell-class signals and grades the
// result with the sentiment composite. A tie, including zero signals, is a
// HOLD at confidence 0.5.
func aggregate(emitted []models.Signal, sentimentOverall float64) (models.SignalType, float64) {
	var buys, sells int
	for _, s := range emitted {
		if s.Direction.IsBuyClass() {
			buys++
		}
		if s.Direction.IsSellClass() {
			sells++
		}
	}
	switch {
	case buys > sells && sentimentOverall > bullishSentiment:
		return models.SignalStrongBuy, 0.8
	case buys > sells:
		return models.SignalBuy, 0.6
	case sells > buys && sentimentOverall < bearishSentiment:
		return models.SignalStrongSell, 0.8
	case sells > buys:
		return models.SignalSell, 0.6
	default:
		return models.SignalHold, 0.5
	}
}
