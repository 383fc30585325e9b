package forecast

import "testing"

func TestProject_ExactLine(t *testing.T) {
	// y = 2x + 1 over x = 0..4; the fit recovers the line exactly.
	series := []float64{1, 3, 5, 7, 9}
	got := Project(series, 3)
	want := []int{11, 13, 15}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestProject_ConstantSeries(t *testing.T) {
	series := []float64{4, 4, 4, 4}
	got := Project(series, Horizon)
	if len(got) != Horizon {
		t.Fatalf("length: got %d, want %d", len(got), Horizon)
	}
	for i, v := range got {
		if v != 4 {
			t.Errorf("step %d: got %d, want 4", i, v)
		}
	}
}

func TestProject_NegativeTrendClampsToZero(t *testing.T) {
	series := []float64{10, 7, 4, 1}
	got := Project(series, 4)
	// Slope -3: projections run -2, -5, ... and clamp at zero.
	for i, v := range got {
		if v != 0 {
			t.Errorf("step %d: got %d, want 0", i, v)
		}
	}
}

func TestProject_EmptyAndSingle(t *testing.T) {
	if got := Project(nil, 3); len(got) != 3 || got[0] != 0 {
		t.Errorf("empty series: got %v, want zeros", got)
	}
	got := Project([]float64{6}, 3)
	for i, v := range got {
		if v != 6 {
			t.Errorf("single observation step %d: got %d, want 6", i, v)
		}
	}
}
