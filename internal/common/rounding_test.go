package common

import (
	"math"
	"testing"
)

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1234567.4, 1234567},
		{1234567.5, 1234568},
		{-250.6, -251},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundCurrency(tt.in); got != tt.want {
			t.Errorf("RoundCurrency(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.333333, 33.33},
		{66.666666, 66.67},
		{100.0, 100.0},
		{0.005, 0.01},
	}
	for _, tt := range tests {
		if got := RoundPercent(tt.in); got != tt.want {
			t.Errorf("RoundPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCorrectPercentageDrift_ThirdsSumToHundred(t *testing.T) {
	// Three equal allocations round to 33.33 each, 99.99 total. The single
	// cent of residual goes in full to the largest bucket.
	percents := []float64{33.33, 33.33, 33.33}
	CorrectPercentageDrift(percents, 0)
	sum := percents[0] + percents[1] + percents[2]
	if math.Abs(sum-100.0) > 1e-9 {
		t.Errorf("sum = %v, want exactly 100.00", sum)
	}
	if percents[0] != 33.34 {
		t.Errorf("largest bucket = %v, want 33.34 (full drift applied to largest)", percents[0])
	}
	if percents[1] != 33.33 || percents[2] != 33.33 {
		t.Errorf("non-largest buckets changed: %v", percents)
	}

	// A larger drift is corrected the same way.
	percents = []float64{50.00, 30.00, 19.97}
	CorrectPercentageDrift(percents, 0)
	sum = percents[0] + percents[1] + percents[2]
	if math.Abs(sum-100.0) > 1e-9 {
		t.Errorf("sum = %v, want exactly 100.00", sum)
	}
	if percents[0] != 50.03 {
		t.Errorf("largest bucket = %v, want 50.03 (full drift applied to largest)", percents[0])
	}
	if percents[1] != 30.00 || percents[2] != 19.97 {
		t.Errorf("non-largest buckets changed: %v", percents)
	}
}

func TestCorrectPercentageDrift_OneCentOvershoot(t *testing.T) {
	// Rounded percentages can also overshoot 100 by a cent; the largest
	// bucket absorbs the negative residual.
	percents := []float64{50.01, 30.00, 20.00}
	CorrectPercentageDrift(percents, 0)
	sum := percents[0] + percents[1] + percents[2]
	if math.Abs(sum-100.0) > 1e-9 {
		t.Errorf("sum = %v, want exactly 100.00", sum)
	}
	if percents[0] != 50.00 {
		t.Errorf("largest bucket = %v, want 50.00", percents[0])
	}
}

func TestCorrectPercentageDrift_ExactHundredUntouched(t *testing.T) {
	percents := []float64{60.00, 25.00, 15.00}
	CorrectPercentageDrift(percents, 0)
	if percents[0] != 60.00 || percents[1] != 25.00 || percents[2] != 15.00 {
		t.Errorf("zero-drift input must be untouched, got %v", percents)
	}
}

func TestCorrectPercentageDrift_EmptyAndBadIndex(t *testing.T) {
	CorrectPercentageDrift(nil, 0) // must not panic

	percents := []float64{99.0}
	CorrectPercentageDrift(percents, 5)
	if percents[0] != 99.0 {
		t.Errorf("out-of-range index must be a no-op, got %v", percents[0])
	}
}
