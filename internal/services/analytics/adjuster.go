package analytics

import (
	"github.com/wealthlens/wealthlens/internal/models"
)

// AdjustOwnership scales every monetary field of a property by the holder's
// fractional ownership. Ownership defaults to 100% when absent. Missing loan
// or cashflow sub-records default to zeroes here, at the adjuster boundary,
// so downstream analytics never touch the optional records directly.
// No rounding here. Rounding happens only at presentation boundaries.
func AdjustOwnership(asset *models.PropertyAsset) models.AdjustedAsset {
	share := asset.OwnershipShare()

	adj := models.AdjustedAsset{
		Asset:         asset,
		PurchasePrice: asset.PurchasePrice * share,
		RentalStatus:  models.RentalStatusSelfOccupied,
	}

	if asset.UserValue != nil {
		v := *asset.UserValue * share
		adj.UserValue = &v
	}
	if asset.EstimateMin != nil {
		v := *asset.EstimateMin * share
		adj.EstimateMin = &v
	}
	if asset.EstimateMax != nil {
		v := *asset.EstimateMax * share
		adj.EstimateMax = &v
	}

	if loan := asset.Loan; loan != nil {
		adj.OutstandingBalance = loan.OutstandingBalance * share
		adj.MonthlyEMI = loan.EMI * share
	}

	if cf := asset.Cashflow; cf != nil {
		adj.RentalStatus = cf.Status
		adj.MonthlyRent = cf.MonthlyRent * share
		adj.MonthlyMaintenance = cf.MonthlyMaintenance * share
		adj.AnnualPropertyTax = cf.AnnualPropertyTax * share
		adj.OtherMonthlyCosts = cf.OtherMonthlyCosts * share
	}

	return adj
}

// valuationStrategy is one named way of deriving a property's current value.
// Strategies are evaluated in order; the first non-nil result wins and its
// tag is recorded so callers can assert provenance.
type valuationStrategy struct {
	source models.ValuationSource
	value  func(a *models.AdjustedAsset) *float64
}

var valuationStrategies = []valuationStrategy{
	{
		source: models.ValuationUserOverride,
		value: func(a *models.AdjustedAsset) *float64 {
			return a.UserValue
		},
	},
	{
		source: models.ValuationEstimateMidpoint,
		value: func(a *models.AdjustedAsset) *float64 {
			if a.EstimateMin == nil || a.EstimateMax == nil {
				return nil
			}
			mid := (*a.EstimateMin + *a.EstimateMax) / 2
			return &mid
		},
	},
	{
		source: models.ValuationPurchasePrice,
		value: func(a *models.AdjustedAsset) *float64 {
			if a.PurchasePrice <= 0 {
				return nil
			}
			v := a.PurchasePrice
			return &v
		},
	},
}

// ResolveCurrentValue evaluates the valuation strategies in order and returns
// the first non-nil value with its provenance tag, or (nil, ValuationNone).
func ResolveCurrentValue(a *models.AdjustedAsset) (*float64, models.ValuationSource) {
	for _, s := range valuationStrategies {
		if v := s.value(a); v != nil {
			return v, s.source
		}
	}
	return nil, models.ValuationNone
}
