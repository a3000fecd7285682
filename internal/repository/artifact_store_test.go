package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func sampleReport() *models.AnalysisReport {
	generated := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)
	points := make([]models.PricePoint, 3)
	for i := range points {
		points[i] = models.PricePoint{
			Timestamp: generated.AddDate(0, 0, i-3),
			Open:      100, High: 105, Low: 95, Close: 102, Volume: 1e6,
		}
	}
	return &models.AnalysisReport{
		Ticker:       "AAPL",
		Company:      models.CompanyInfo{Name: "Apple Inc.", Ticker: "AAPL"},
		GeneratedAt:  generated,
		CurrentPrice: 102,
		Indicators: models.IndicatorSet{
			SMA20: 102, SMA50: 102, SMA200: 102, RSI: 50,
			Series: models.IndicatorSeries{
				SMA20:           []float64{102, 102, 102},
				SMA50:           []float64{102, 102, 102},
				SMA200:          []float64{102, 102, 102},
				RSI:             []float64{50, 50, 50},
				MACDLine:        []float64{0, 0, 0},
				MACDSignal:      []float64{0, 0, 0},
				BollingerUpper:  []float64{102, 102, 102},
				BollingerMiddle: []float64{102, 102, 102},
				BollingerLower:  []float64{102, 102, 102},
			},
		},
		Recommendation: models.Recommendation{Overall: models.SignalHold, Confidence: 0.5},
		Regime:         models.RegimeNeutral,
		Anomalies:      []models.AnomalyRecord{},
		Forecast:       []float64{102, 102, 102, 102, 102},
		PriceStats:     models.PriceStats{Mean: 102, Min: 102, Max: 102, Median: 102},
		Points:         points,
	}
}

func TestSaveWritesThreeArtifacts(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileArtifactStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	files, err := store.Save(sampleReport())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	for _, kind := range []string{"csv", "json", "text"} {
		path, ok := files[kind]
		if !ok {
			t.Fatalf("missing %s artifact in %v", kind, files)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("%s artifact not on disk: %v", kind, err)
		}
	}
}

func TestSaveFileNaming(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileArtifactStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files, err := store.Save(sampleReport())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if got := filepath.Base(files["csv"]); got != "AAPL_analysis_20240601_150405.csv" {
		t.Fatalf("csv name = %q", got)
	}
	if got := filepath.Base(files["json"]); got != "AAPL_summary_20240601_150405.json" {
		t.Fatalf("json name = %q", got)
	}
	if got := filepath.Base(files["text"]); got != "AAPL_summary_20240601_150405.txt" {
		t.Fatalf("text name = %q", got)
	}
}

func TestSaveCSVHasHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileArtifactStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files, err := store.Save(sampleReport())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	b, err := os.ReadFile(files["csv"])
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 4 {
		t.Fatalf("csv has %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,open,high,low,close,volume") {
		t.Fatalf("unexpected csv header: %q", lines[0])
	}
}

func TestSaveJSONRoundTrips(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileArtifactStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files, err := store.Save(sampleReport())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	b, err := os.ReadFile(files["json"])
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var report models.AnalysisReport
	if err := json.Unmarshal(b, &report); err != nil {
		t.Fatalf("json artifact does not parse: %v", err)
	}
	if report.Ticker != "AAPL" || report.Recommendation.Overall != models.SignalHold {
		t.Fatalf("json artifact lost fields: %+v", report)
	}
}

func TestSaveTextSummaryContent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileArtifactStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files, err := store.Save(sampleReport())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	b, err := os.ReadFile(files["text"])
	if err != nil {
		t.Fatalf("read text: %v", err)
	}
	text := string(b)
	for _, want := range []string{
		"Apple Inc. (AAPL) Analysis",
		"Current Price: $102.00",
		"RSI: 50.00",
		"Recommendation: HOLD (confidence 0.50)",
		"Sector: N/A",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("text summary missing %q:\n%s", want, text)
		}
	}
}
