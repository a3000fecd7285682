package models

import "time"

// BandState holds Bollinger band values for the latest point.
// Invariant: Upper >= Middle >= Lower (equal only in the zero-variance case).
type BandState struct {
	Upper     float64 `json:"upper"`
	Middle    float64 `json:"middle"`
	Lower     float64 `json:"lower"`
	Bandwidth float64 `json:"bandwidth"`
	PercentB  float64 `json:"percent_b"`
}

// MACDState holds the latest MACD line/signal/histogram values and the
// crossover detected between the last two points (empty when none).
type MACDState struct {
	Line      float64    `json:"macd_line"`
	Signal    float64    `json:"signal_line"`
	Histogram float64    `json:"histogram"`
	Crossover SignalType `json:"crossover_signal,omitempty"`
}

// IndicatorSeries carries full per-point series aligned to the input for charting.
type IndicatorSeries struct {
	SMA20           []float64 `json:"sma_20"`
	SMA50           []float64 `json:"sma_50"`
	SMA200          []float64 `json:"sma_200"`
	RSI             []float64 `json:"rsi"`
	MACDLine        []float64 `json:"macd_line"`
	MACDSignal      []float64 `json:"macd_signal"`
	BollingerUpper  []float64 `json:"bollinger_upper"`
	BollingerMiddle []float64 `json:"bollinger_middle"`
	BollingerLower  []float64 `json:"bollinger_lower"`
}

// IndicatorSet maps each indicator to its most recent value.
// Every field is always finite: short series shrink the window, never NaN.
type IndicatorSet struct {
	SMA20           float64         `json:"sma_20"`
	SMA50           float64         `json:"sma_50"`
	SMA200          float64         `json:"sma_200"`
	EMA12           float64         `json:"ema_12"`
	EMA26           float64         `json:"ema_26"`
	RSI             float64         `json:"rsi"`
	MACD            MACDState       `json:"macd"`
	Bollinger       BandState       `json:"bollinger"`
	ATR             float64         `json:"atr"`
	ADX             float64         `json:"adx"`
	CCI             float64         `json:"cci"`
	StochasticK     float64         `json:"stochastic_k"`
	WilliamsR       float64         `json:"williams_r"`
	MFI             float64         `json:"mfi"`
	OBV             float64         `json:"obv"`
	VolumeEMA       float64         `json:"volume_ema"`
	VolatilityIndex float64         `json:"volatility_index"`
	Series          IndicatorSeries `json:"series"`
}

// Regime is the single qualitative market state tag for the window.
type Regime string

const (
	RegimeBullish         Regime = "BULLISH"
	RegimeBearish         Regime = "BEARISH"
	RegimeNeutral         Regime = "NEUTRAL"
	RegimeBullishVolatile Regime = "BULLISH_VOLATILE"
	RegimeBearishVolatile Regime = "BEARISH_VOLATILE"
	RegimeHighVolatility  Regime = "HIGH_VOLATILITY"
	RegimeUnknown         Regime = "UNKNOWN"
)

// PatternScores holds heuristic pattern detections. Nil fields mean the
// series was too short for that detector.
type PatternScores struct {
	DoubleBottom     *float64 `json:"double_bottom,omitempty"`
	HeadAndShoulders *bool    `json:"head_and_shoulders,omitempty"`
	Triangle         *float64 `json:"triangle,omitempty"`
	Channel          *float64 `json:"channel,omitempty"`
}

// AnomalyType classifies which feature dominated an anomalous point.
type AnomalyType string

const (
	AnomalyPriceJump    AnomalyType = "PRICE_JUMP"
	AnomalyVolumeSpike  AnomalyType = "VOLUME_SPIKE"
	AnomalyPatternBreak AnomalyType = "PATTERN_BREAK"
)

// AnomalyRecord flags one statistically unusual point.
type AnomalyRecord struct {
	Timestamp  time.Time   `json:"timestamp"`
	Type       AnomalyType `json:"type"`
	Confidence float64     `json:"confidence"`
}

// AnalysisReport is the full output of one analysis run. Flat and
// JSON-serializable; no references back into the input series.
type AnalysisReport struct {
	Ticker         string          `json:"ticker"`
	Company        CompanyInfo     `json:"company"`
	GeneratedAt    time.Time       `json:"generated_at"`
	CurrentPrice   float64         `json:"current_price"`
	Indicators     IndicatorSet    `json:"indicators"`
	Recommendation Recommendation  `json:"recommendation"`
	Patterns       PatternScores   `json:"patterns"`
	Regime         Regime          `json:"regime"`
	Anomalies      []AnomalyRecord `json:"anomalies"`
	Forecast       []float64       `json:"forecast"`
	PriceStats     PriceStats      `json:"price_statistics"`
	Volume         VolumeAnalysis  `json:"volume_analysis"`
	Points         []PricePoint    `json:"historical_prices,omitempty"`
}

// RunSummary is one persisted analysis run row, used for run history queries.
type RunSummary struct {
	Ticker         string     `json:"ticker"`
	GeneratedAt    time.Time  `json:"generated_at"`
	CurrentPrice   float64    `json:"current_price"`
	Recommendation SignalType `json:"recommendation"`
	Confidence     float64    `json:"confidence"`
	Regime         Regime     `json:"regime"`
	RSI            float64    `json:"rsi"`
	SignalCount    int        `json:"signal_count"`
	AnomalyCount   int        `json:"anomaly_count"`
}

// AnalysisResult wraps a report with the artifacts written for it.
type AnalysisResult struct {
	Report        *AnalysisReport   `json:"analysis"`
	OutputFiles   map[string]string `json:"output_files,omitempty"`
	ExecutionTime float64           `json:"execution_time_seconds"`
}
