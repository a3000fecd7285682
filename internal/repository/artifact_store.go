package repository

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/pkg/util"
)

// FileArtifactStore writes per-run artifacts: a CSV with the per-point
// chart series, a JSON dump of the full report and a human-readable text
// summary. File names follow {ticker}_{kind}_{timestamp}.{ext}.
type FileArtifactStore struct {
	dir string
}

// NewFileArtifactStore creates the store and its output directory.
func NewFileArtifactStore(dir string) (repository.ArtifactStore, error) {
	if dir == "" {
		dir = "output"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileArtifactStore{dir: dir}, nil
}

func (s *FileArtifactStore) Save(report *models.AnalysisReport) (map[string]string, error) {
	ts := util.FileTimestamp(report.GeneratedAt)
	out := make(map[string]string, 3)

	csvPath := filepath.Join(s.dir, fmt.Sprintf("%s_analysis_%s.csv", report.Ticker, ts))
	if err := s.writeCSV(csvPath, report); err != nil {
		return nil, err
	}
	out["csv"] = csvPath

	jsonPath := filepath.Join(s.dir, fmt.Sprintf("%s_summary_%s.json", report.Ticker, ts))
	if err := s.writeJSON(jsonPath, report); err != nil {
		return nil, err
	}
	out["json"] = jsonPath

	txtPath := filepath.Join(s.dir, fmt.Sprintf("%s_summary_%s.txt", report.Ticker, ts))
	if err := s.writeText(txtPath, report); err != nil {
		return nil, err
	}
	out["text"] = txtPath

	return out, nil
}

func (s *FileArtifactStore) writeCSV(path string, report *models.AnalysisReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"timestamp", "open", "high", "low", "close", "volume",
		"sma_20", "sma_50", "sma_200", "rsi",
		"macd_line", "macd_signal",
		"bollinger_upper", "bollinger_middle", "bollinger_lower",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	series := report.Indicators.Series
	for i, p := range report.Points {
		row := []string{
			p.Timestamp.Format("2006-01-02"),
			formatFloat(p.Open),
			formatFloat(p.High),
			formatFloat(p.Low),
			formatFloat(p.Close),
			formatFloat(p.Volume),
			columnAt(series.SMA20, i),
			columnAt(series.SMA50, i),
			columnAt(series.SMA200, i),
			columnAt(series.RSI, i),
			columnAt(series.MACDLine, i),
			columnAt(series.MACDSignal, i),
			columnAt(series.BollingerUpper, i),
			columnAt(series.BollingerMiddle, i),
			columnAt(series.BollingerLower, i),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func (s *FileArtifactStore) writeJSON(path string, report *models.AnalysisReport) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func (s *FileArtifactStore) writeText(path string, report *models.AnalysisReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) Analysis\n", report.Company.Name, report.Ticker)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("Current Technical Indicators:\n")
	fmt.Fprintf(&b, "Current Price: $%.2f\n", report.CurrentPrice)
	fmt.Fprintf(&b, "RSI: %.2f\n", report.Indicators.RSI)
	fmt.Fprintf(&b, "SMA 20: $%.2f\n", report.Indicators.SMA20)
	fmt.Fprintf(&b, "SMA 50: $%.2f\n", report.Indicators.SMA50)
	fmt.Fprintf(&b, "SMA 200: $%.2f\n\n", report.Indicators.SMA200)

	b.WriteString("Price Statistics:\n")
	fmt.Fprintf(&b, "Mean: %.2f\n", report.PriceStats.Mean)
	fmt.Fprintf(&b, "Std: %.2f\n", report.PriceStats.Std)
	fmt.Fprintf(&b, "Min: %.2f\n", report.PriceStats.Min)
	fmt.Fprintf(&b, "Max: %.2f\n", report.PriceStats.Max)
	fmt.Fprintf(&b, "Median: %.2f\n\n", report.PriceStats.Median)

	fmt.Fprintf(&b, "Recommendation: %s (confidence %.2f)\n", report.Recommendation.Overall, report.Recommendation.Confidence)
	fmt.Fprintf(&b, "Regime: %s\n\n", report.Regime)

	b.WriteString("Company Information:\n")
	fmt.Fprintf(&b, "Sector: %s\n", orNA(report.Company.Sector))
	fmt.Fprintf(&b, "Industry: %s\n", orNA(report.Company.Industry))
	fmt.Fprintf(&b, "Market Cap: %s\n", dollarsOrNA(report.Company.MarketCap))
	fmt.Fprintf(&b, "52 Week High: %s\n", dollarsOrNA(report.Company.FiftyTwoWeekHigh))
	fmt.Fprintf(&b, "52 Week Low: %s\n", dollarsOrNA(report.Company.FiftyTwoWeekLow))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write text summary: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func columnAt(col []float64, i int) string {
	if i >= len(col) {
		return ""
	}
	return formatFloat(col[i])
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func dollarsOrNA(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", v)
}
