package indicators

import "testing"

func TestPriceStatistics(t *testing.T) {
	st := PriceStatistics([]float64{1, 2, 3, 4, 5})
	if !almostEqual(st.Mean, 3, 1e-9) {
		t.Fatalf("mean = %v, want 3", st.Mean)
	}
	if st.Min != 1 || st.Max != 5 {
		t.Fatalf("min/max = %v/%v, want 1/5", st.Min, st.Max)
	}
	if st.Median != 3 {
		t.Fatalf("median = %v, want 3", st.Median)
	}
	if !almostEqual(st.Std, 1.5811388300841898, 1e-9) {
		t.Fatalf("std = %v, want sample stdev ~1.5811", st.Std)
	}
}

func TestPriceStatisticsEvenMedian(t *testing.T) {
	st := PriceStatistics([]float64{4, 1, 3, 2})
	if st.Median != 2.5 {
		t.Fatalf("median = %v, want 2.5", st.Median)
	}
}

func TestVolumeProfile(t *testing.T) {
	// 10 days at 1000 then 5 days at 2000: average 1333.33, recent 2000.
	vols := make([]float64, 0, 15)
	for i := 0; i < 10; i++ {
		vols = append(vols, 1000)
	}
	for i := 0; i < 5; i++ {
		vols = append(vols, 2000)
	}
	va := VolumeProfile(vols)
	if !almostEqual(va.RecentVolume, 2000, 1e-9) {
		t.Fatalf("recent volume = %v, want 2000", va.RecentVolume)
	}
	if !almostEqual(va.VolumeTrend, 2000/va.AverageVolume, 1e-9) {
		t.Fatalf("volume trend = %v, want recent/average", va.VolumeTrend)
	}
	if va.VolumeTrend <= 1 {
		t.Fatalf("volume trend = %v, want > 1 for rising volume", va.VolumeTrend)
	}
}

func TestVolumeProfileZeroAverage(t *testing.T) {
	va := VolumeProfile([]float64{0, 0, 0})
	if va.VolumeTrend != 0 {
		t.Fatalf("volume trend = %v, want 0 when average volume is 0", va.VolumeTrend)
	}
}
