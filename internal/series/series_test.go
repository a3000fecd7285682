package series

import (
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func pt(day int, close float64) models.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.PricePoint{
		Timestamp: base.AddDate(0, 0, day),
		Open:      close,
		High:      close + 1,
		Low:       close - 1,
		Close:     close,
		Volume:    1000,
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); err != ErrEmpty {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestNewSortsByTimestamp(t *testing.T) {
	s, err := New([]models.PricePoint{pt(2, 12), pt(0, 10), pt(1, 11)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	closes := s.Closes()
	want := []float64{10, 11, 12}
	for i, c := range closes {
		if c != want[i] {
			t.Fatalf("closes[%d] = %v, want %v", i, c, want[i])
		}
	}
}

func TestNewDeduplicatesKeepingLast(t *testing.T) {
	a := pt(0, 10)
	b := pt(0, 20)
	s, err := New([]models.PricePoint{a, b, pt(1, 30)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 points after dedup, got %d", s.Len())
	}
	if s.Points()[0].Close != 20 {
		t.Fatalf("expected duplicate resolved to last value 20, got %v", s.Points()[0].Close)
	}
}

func TestNewDoesNotMutateInput(t *testing.T) {
	in := []models.PricePoint{pt(1, 11), pt(0, 10)}
	if _, err := New(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in[0].Close != 11 {
		t.Fatalf("input slice was reordered")
	}
}

func TestLastClose(t *testing.T) {
	s, err := New([]models.PricePoint{pt(0, 10), pt(1, 42)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.LastClose() != 42 {
		t.Fatalf("LastClose = %v, want 42", s.LastClose())
	}
}

func TestReturns(t *testing.T) {
	s, err := New([]models.PricePoint{pt(0, 100), pt(1, 110), pt(2, 99)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := s.Returns()
	if len(r) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(r))
	}
	if r[0] < 0.0999 || r[0] > 0.1001 {
		t.Fatalf("returns[0] = %v, want ~0.1", r[0])
	}
	if r[1] > -0.0999 || r[1] < -0.1001 {
		t.Fatalf("returns[1] = %v, want ~-0.1", r[1])
	}
}

func TestReturnsGuardsZeroClose(t *testing.T) {
	s, err := New([]models.PricePoint{pt(0, 0), pt(1, 10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := s.Returns()
	if len(r) != 1 || r[0] != 0 {
		t.Fatalf("expected zero return for zero previous close, got %v", r)
	}
}

func TestReturnsTooShort(t *testing.T) {
	s, err := New([]models.PricePoint{pt(0, 10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := s.Returns(); r != nil {
		t.Fatalf("expected nil returns for single point, got %v", r)
	}
}
