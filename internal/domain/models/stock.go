package models

import "time"

// PricePoint is a single OHLCV observation. Immutable once recorded.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// CompanyInfo holds basic listing metadata for a ticker.
type CompanyInfo struct {
	Name             string  `json:"name"`
	Ticker           string  `json:"ticker"`
	Sector           string  `json:"sector,omitempty"`
	Industry         string  `json:"industry,omitempty"`
	MarketCap        float64 `json:"market_cap,omitempty"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low,omitempty"`
}

// Quote is a point-in-time snapshot for a ticker.
type Quote struct {
	Ticker        string    `json:"ticker"`
	Name          string    `json:"name,omitempty"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"change_percent,omitempty"`
	Volume        float64   `json:"volume,omitempty"`
	AvgVolume     float64   `json:"avg_volume,omitempty"`
	AsOf          time.Time `json:"as_of"`
}

// SearchMatch is a single ticker search result.
type SearchMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Exchange string `json:"exchange,omitempty"`
	Type     string `json:"type,omitempty"`
}

// PriceStats summarizes the close series of an analysis window.
type PriceStats struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// VolumeAnalysis compares recent volume to the window average.
type VolumeAnalysis struct {
	AverageVolume float64 `json:"average_volume"`
	RecentVolume  float64 `json:"recent_volume"`
	VolumeTrend   float64 `json:"volume_trend"`
}
