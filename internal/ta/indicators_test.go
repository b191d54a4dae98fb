package ta

import (
	"math"
	"testing"
)

func TestDiff(t *testing.T) {
	got := Diff([]float64{100, 110, 99})
	if !math.IsNaN(got[0]) {
		t.Fatalf("expected NaN at index 0, got %v", got[0])
	}
	if got[1] != 10 || got[2] != -11 {
		t.Fatalf("unexpected diff: %v", got)
	}
	if len(Diff(nil)) != 0 {
		t.Fatal("expected empty diff for empty input")
	}
}

func TestPctChange(t *testing.T) {
	got := PctChange([]float64{100, 110, 99})
	if !math.IsNaN(got[0]) {
		t.Fatalf("expected NaN at index 0, got %v", got[0])
	}
	if math.Abs(got[1]-10) > 1e-9 || math.Abs(got[2]+10) > 1e-9 {
		t.Fatalf("unexpected pct change: %v", got)
	}
}

func TestPctChangeZeroPrevious(t *testing.T) {
	got := PctChange([]float64{0, 5, 10})
	if !math.IsNaN(got[1]) {
		t.Fatalf("expected NaN after a zero close, got %v", got[1])
	}
	if got[2] != 100 {
		t.Fatalf("expected 100, got %v", got[2])
	}
}

func TestSMASeries(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := SMASeries(values, 3)
	for i := 0; i < 2; i++ {
		if !math.IsNaN(got[i]) {
			t.Fatalf("expected NaN at %d, got %v", i, got[i])
		}
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if math.Abs(got[i+2]-w) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i+2, w, got[i+2])
		}
	}
}

func TestSMALastMatchesWindowMean(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i*i%37) + 0.5
	}
	for _, period := range []int{1, 20, 60, 100} {
		var sum float64
		for _, v := range values[len(values)-period:] {
			sum += v
		}
		want := sum / float64(period)
		if got := SMALast(values, period); math.Abs(got-want) > 1e-9 {
			t.Fatalf("period %d: expected %v, got %v", period, want, got)
		}
	}
}

func TestSMALastInsufficient(t *testing.T) {
	if !math.IsNaN(SMALast([]float64{1, 2}, 20)) {
		t.Fatal("expected NaN with fewer than period values")
	}
	if !math.IsNaN(SMALast([]float64{1, 2}, 0)) {
		t.Fatal("expected NaN for non-positive period")
	}
}
