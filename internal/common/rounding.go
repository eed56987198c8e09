package common

import "math"

// RoundCurrency rounds a monetary amount to the nearest whole unit.
// Applied only at presentation boundaries; intermediate math stays unrounded.
func RoundCurrency(v float64) float64 {
	return math.Round(v)
}

// RoundPercent rounds a percentage to two decimal places.
func RoundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}

// CorrectPercentageDrift adjusts a slice of rounded percentages so they sum to
// exactly 100.00. The residual, rounded to two decimals, is added in full to
// the entry at largestIdx, which callers pass as the largest allocation. The
// residual is never split across entries. No-op when the slice is empty or the
// drift rounds to zero.
func CorrectPercentageDrift(percents []float64, largestIdx int) {
	if len(percents) == 0 || largestIdx < 0 || largestIdx >= len(percents) {
		return
	}

	sum := 0.0
	for _, p := range percents {
		sum += p
	}

	drift := RoundPercent(100.0 - sum)
	if drift != 0 {
		percents[largestIdx] = RoundPercent(percents[largestIdx] + drift)
	}
}
