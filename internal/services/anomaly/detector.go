// Package anomaly flags statistically unusual points in an OHLCV window
// with a seeded isolation forest over three engineered features per point:
// daily return, volume percent-change and intraday range over close.
//
// Anomaly membership is heuristic and depends on the seed; only the type
// taxonomy and the confidence bounds are contractual.
package anomaly

import (
	"math"
	"sort"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/series"
)

const featureCount = 3

// Detector holds the tuning for one detection run.
type Detector struct {
	contamination float64
	seed          int64
}

// Option configures a Detector.
type Option func(*Detector)

// WithContamination sets the expected anomaly fraction.
func WithContamination(c float64) Option {
	return func(d *Detector) { d.contamination = c }
}

// WithSeed fixes the forest's random source for reproducible runs.
func WithSeed(seed int64) Option {
	return func(d *Detector) { d.seed = seed }
}

// NewDetector builds a detector with a 10% contamination default and a
// fixed seed.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{contamination: 0.1, seed: 42}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the flagged points, most anomalous first by position.
// Windows too small to fit a forest yield an empty list, never an error:
// anomaly detection degrades to "nothing found" rather than failing the run.
func (d *Detector) Detect(s *series.Series) []models.AnomalyRecord {
	points := s.Points()
	feats := buildFeatures(points)
	if len(feats) < minSplittableSize {
		return []models.AnomalyRecord{}
	}

	forest := fitForest(feats, d.seed)
	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(feats))
	for i, row := range feats {
		scores[i] = scored{idx: i, score: forest.score(row)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	flagged := int(math.Round(d.contamination * float64(len(feats))))
	if flagged > len(scores) {
		flagged = len(scores)
	}

	returnStd := columnStdev(feats, 0)
	volumeStd := columnStdev(feats, 1)

	picked := scores[:flagged]
	sort.Slice(picked, func(i, j int) bool { return picked[i].idx < picked[j].idx })

	out := make([]models.AnomalyRecord, 0, flagged)
	for _, sc := range picked {
		row := feats[sc.idx]
		out = append(out, models.AnomalyRecord{
			Timestamp:  points[sc.idx].Timestamp,
			Type:       classify(row, returnStd, volumeStd),
			Confidence: confidence(row),
		})
	}
	return out
}

// buildFeatures engineers the per-point feature rows. Undefined leading
// percent-changes and zero denominators are taken as 0.
func buildFeatures(points []models.PricePoint) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		row := make([]float64, featureCount)
		if i > 0 {
			if prev := points[i-1].Close; prev != 0 {
				row[0] = p.Close/prev - 1
			}
			if prev := points[i-1].Volume; prev != 0 {
				row[1] = p.Volume/prev - 1
			}
		}
		if p.Close != 0 {
			row[2] = (p.High - p.Low) / p.Close
		}
		out[i] = row
	}
	return out
}

// classify attributes the anomaly to the feature that deviates beyond twice
// its series-wide spread, preferring price over volume.
func classify(row []float64, returnStd, volumeStd float64) models.AnomalyType {
	if math.Abs(row[0]) > 2*returnStd {
		return models.AnomalyPriceJump
	}
	if math.Abs(row[1]) > 2*volumeStd {
		return models.AnomalyVolumeSpike
	}
	return models.AnomalyPatternBreak
}

// confidence is the absolute mean feature value, capped at 1.
func confidence(row []float64) float64 {
	var sum float64
	for _, v := range row {
		sum += v
	}
	c := math.Abs(sum / float64(len(row)))
	if c > 1 {
		return 1
	}
	return c
}

func columnStdev(rows [][]float64, col int) float64 {
	if len(rows) < 2 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += r[col]
	}
	m := sum / float64(len(rows))
	var ss float64
	for _, r := range rows {
		d := r[col] - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(rows)-1))
}
