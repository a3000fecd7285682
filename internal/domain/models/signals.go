package models

import "time"

// SignalType classifies a trading signal direction.
type SignalType string

const (
	SignalBuy        SignalType = "BUY"
	SignalSell       SignalType = "SELL"
	SignalHold       SignalType = "HOLD"
	SignalStrongBuy  SignalType = "STRONG_BUY"
	SignalStrongSell SignalType = "STRONG_SELL"
)

// IsBuyClass reports whether s counts toward the buy side of the aggregation.
func (s SignalType) IsBuyClass() bool {
	return s == SignalBuy || s == SignalStrongBuy
}

// IsSellClass reports whether s counts toward the sell side of the aggregation.
func (s SignalType) IsSellClass() bool {
	return s == SignalSell || s == SignalStrongSell
}

// SignalStrength grades how decisive a signal is.
type SignalStrength string

const (
	StrengthWeak     SignalStrength = "WEAK"
	StrengthModerate SignalStrength = "MODERATE"
	StrengthStrong   SignalStrength = "STRONG"
)

// Signal is one rule emission during synthesis. Never mutated after creation.
type Signal struct {
	Indicator  string         `json:"indicator"`
	Direction  SignalType     `json:"direction"`
	Strength   SignalStrength `json:"strength"`
	PriceLevel float64        `json:"price_level"`
	Timestamp  time.Time      `json:"timestamp"`
	Details    string         `json:"details,omitempty"`
}

// SentimentAnalysis is the composite sentiment consumed by the synthesizer.
type SentimentAnalysis struct {
	OverallScore       float64 `json:"overall_score"`
	NewsSentiment      float64 `json:"news_sentiment,omitempty"`
	AnalystSentiment   float64 `json:"analyst_sentiment,omitempty"`
	TechnicalSentiment float64 `json:"technical_sentiment,omitempty"`
	SourcesAnalyzed    int     `json:"sources_analyzed,omitempty"`
}

// Recommendation is the per-run fold over the emitted signal list.
type Recommendation struct {
	Overall          SignalType        `json:"overall"`
	Confidence       float64           `json:"confidence"`
	Signals          []Signal          `json:"signals"`
	SupportLevels    []float64         `json:"support_levels"`
	ResistanceLevels []float64         `json:"resistance_levels"`
	Sentiment        SentimentAnalysis `json:"sentiment"`
}
