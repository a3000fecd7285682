package models

// Requests for stock HTTP endpoints. Defined in domain for consistency and reuse.

type QuoteRequest struct {
	Ticker string `param:"ticker" json:"ticker" validate:"required,min=1,max=10"`
}

type AnalyzeRequest struct {
	Ticker string `param:"ticker" json:"ticker" validate:"required,min=1,max=10"`
	Days   int    `query:"days" json:"days" default:"365" validate:"gte=2,lte=3650"`
	// Sentiment is optional; nil falls back to the configured default so an
	// explicit 0 (maximally bearish) stays distinguishable from "not given".
	Sentiment *float64 `query:"sentiment" json:"sentiment,omitempty" validate:"omitempty,gte=0,lte=1"`
	Refresh   bool     `query:"refresh" json:"refresh"`
}

type HistoryRequest struct {
	Ticker string `param:"ticker" json:"ticker" validate:"required,min=1,max=10"`
	Limit  int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=100"`
}

type SearchRequest struct {
	Query string `param:"query" json:"query" validate:"required,min=1,max=64"`
	Limit int    `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=25"`
}
