// Package analytics computes real-estate financial analytics
package analytics

import (
	"math"
	"sort"
	"time"
)

// CashFlow is a single dated cash flow for XIRR calculation.
// Negative = money out (purchase, costs), positive = money in (rent surplus,
// sale proceeds, current value).
type CashFlow struct {
	Date   time.Time
	Amount float64
}

// SolveXIRR computes the annualised internal rate of return for an
// irregularly-dated cash-flow series using Newton-Raphson iteration with a
// bisection fallback. Returns the rate as a decimal (0.12 for 12%) and
// ok=false when no result is computable: fewer than two flows, all flows the
// same sign, all flows on the same date, or non-convergence. Callers must
// treat ok=false as "not computable", never as zero.
func SolveXIRR(flows []CashFlow) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}

	sorted := make([]CashFlow, len(flows))
	copy(sorted, flows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	hasNeg, hasPos := false, false
	for _, f := range sorted {
		if f.Amount < 0 {
			hasNeg = true
		}
		if f.Amount > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return 0, false
	}

	// Year fractions from the first flow, 365-day count.
	baseDate := sorted[0].Date
	years := make([]float64, len(sorted))
	sameDate := true
	for i, f := range sorted {
		days := f.Date.Sub(baseDate).Hours() / 24
		years[i] = days / 365.0
		if years[i] != 0 {
			sameDate = false
		}
	}
	if sameDate {
		// NPV has no time dimension, so the rate is undefined.
		return 0, false
	}

	rate, ok := newtonXIRR(sorted, years)
	if ok {
		return rate, true
	}
	return bisectXIRR(sorted, years)
}

const (
	xirrMaxIter = 100
	xirrTol     = 1e-6
	xirrMinRate = -0.99 // −99%
	xirrMaxRate = 100.0 // +10000%
)

// newtonXIRR runs Newton-Raphson from a simple-return seed, clamping the
// candidate rate to [xirrMinRate, xirrMaxRate] to survive outlier flows.
func newtonXIRR(flows []CashFlow, years []float64) (float64, bool) {
	totalInvested := 0.0
	totalReceived := 0.0
	for _, f := range flows {
		if f.Amount < 0 {
			totalInvested -= f.Amount
		} else {
			totalReceived += f.Amount
		}
	}

	guess := 0.1
	if totalInvested > 0 {
		simpleReturn := totalReceived/totalInvested - 1
		if simpleReturn > -0.9 && simpleReturn < 10 {
			guess = simpleReturn
		}
	}

	rate := guess

	for iter := 0; iter < xirrMaxIter; iter++ {
		npv := 0.0
		dnpv := 0.0

		for i, f := range flows {
			y := years[i]
			base := 1 + rate
			if base <= 0 {
				rate = xirrMinRate
				base = 1 + rate
			}
			discount := math.Pow(base, y)
			if discount == 0 {
				continue
			}
			npv += f.Amount / discount
			if y != 0 {
				dnpv -= y * f.Amount / (discount * base)
			}
		}

		if math.Abs(npv) < xirrTol {
			if math.IsNaN(rate) || math.IsInf(rate, 0) {
				return 0, false
			}
			return rate, true
		}

		if dnpv == 0 {
			// Flat derivative, Newton-Raphson cannot continue.
			return 0, false
		}

		newRate := rate - npv/dnpv
		if newRate < xirrMinRate {
			newRate = xirrMinRate
		}
		if newRate > xirrMaxRate {
			newRate = xirrMaxRate
		}

		rate = newRate
	}

	return 0, false
}

// bisectXIRR is the fallback solver over the bracket [−0.99, +100].
func bisectXIRR(flows []CashFlow, years []float64) (float64, bool) {
	const maxIter = 200

	npvAt := func(rate float64) float64 {
		sum := 0.0
		for i, f := range flows {
			base := 1 + rate
			if base <= 0 {
				return math.NaN()
			}
			sum += f.Amount / math.Pow(base, years[i])
		}
		return sum
	}

	lo, hi := xirrMinRate, xirrMaxRate
	npvLo := npvAt(lo)
	npvHi := npvAt(hi)

	if math.IsNaN(npvLo) || math.IsNaN(npvHi) {
		return 0, false
	}
	if npvLo*npvHi > 0 {
		// Same sign, no root in the bracket.
		return 0, false
	}

	for iter := 0; iter < maxIter; iter++ {
		mid := (lo + hi) / 2
		npvMid := npvAt(mid)
		if math.IsNaN(npvMid) {
			return 0, false
		}
		if math.Abs(npvMid) < xirrTol {
			return mid, true
		}
		if npvMid*npvLo < 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}

	return (lo + hi) / 2, true
}
