package analytics

import (
	"sort"
	"time"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/models"
)

// ValuationStaleAfter is the age beyond which a valuation is flagged stale.
const ValuationStaleAfter = 12 * 30 * 24 * time.Hour // ~12 months

// effectiveRent returns the monthly rent when the property is actually
// rented, zero otherwise. Self-occupied and vacant properties earn nothing
// regardless of what the rent field says.
func effectiveRent(adj *models.AdjustedAsset) float64 {
	if adj.RentalStatus == models.RentalStatusRented {
		return adj.MonthlyRent
	}
	return 0
}

// monthlyExpenses is maintenance + annual property tax spread monthly + other.
func monthlyExpenses(adj *models.AdjustedAsset) float64 {
	return adj.MonthlyMaintenance + adj.AnnualPropertyTax/12 + adj.OtherMonthlyCosts
}

// ComputeAsset derives all per-property metrics from an ownership-adjusted
// asset. Missing optional inputs null the dependent metric; this function
// never fails. now is injected so results are reproducible in tests.
func ComputeAsset(adj models.AdjustedAsset, now time.Time) models.PropertyAnalytics {
	asset := adj.Asset
	rent := effectiveRent(&adj)
	expenses := monthlyExpenses(&adj)

	result := models.PropertyAnalytics{
		AssetID:            asset.ID,
		Nickname:           asset.Nickname,
		City:               asset.City,
		PropertyType:       asset.PropertyType,
		PurchasePrice:      adj.PurchasePrice,
		OutstandingLoan:    adj.OutstandingBalance,
		MonthlyRent:        rent,
		MonthlyEMI:         adj.MonthlyEMI,
		MonthlyExpenses:    expenses,
		EMIRentGap:         rent - adj.MonthlyEMI,
		RentalStatus:       adj.RentalStatus,
		ValuationUpdatedAt: asset.ValuationUpdatedAt,
		ValuationStale:     isValuationStale(asset.ValuationUpdatedAt, now),
	}

	currentValue, source := ResolveCurrentValue(&adj)
	result.CurrentValue = currentValue
	result.ValuationSource = source

	if currentValue != nil {
		gain := *currentValue - adj.PurchasePrice
		result.UnrealizedGain = &gain
	}

	if asset.PurchaseDate != nil {
		years := now.Sub(*asset.PurchaseDate).Hours() / 24 / 365.25
		result.HoldingPeriodYears = &years
	}

	// XIRR over the minimal two-flow series: purchase out, current value in.
	if currentValue != nil && *currentValue > 0 && asset.PurchaseDate != nil && adj.PurchasePrice > 0 {
		flows := []CashFlow{
			{Date: *asset.PurchaseDate, Amount: -adj.PurchasePrice},
			{Date: now, Amount: *currentValue},
		}
		if rate, ok := SolveXIRR(flows); ok {
			pct := rate * 100
			result.XIRRPct = &pct
		}
	}

	if currentValue != nil && *currentValue > 0 {
		annualNet := rent*12 - expenses*12
		yield := annualNet / *currentValue * 100
		result.NetRentalYieldPct = &yield
	}

	return result
}

// isValuationStale reports whether a valuation timestamp is missing or more
// than twelve months old.
func isValuationStale(updated *time.Time, now time.Time) bool {
	if updated == nil {
		return true
	}
	return now.Sub(*updated) > ValuationStaleAfter
}

// ComputePortfolio aggregates per-property analytics into portfolio-level
// figures. totalNetWorth is the user's overall net worth across every holding
// type; nil or non-positive yields a zero allocation percentage. An empty
// asset list yields a well-defined zero result, not an error.
func ComputePortfolio(perAsset []models.PropertyAnalytics, totalNetWorth *float64) models.PortfolioAnalytics {
	var portfolio models.PortfolioAnalytics

	for _, pa := range perAsset {
		if pa.CurrentValue != nil {
			portfolio.TotalValue += *pa.CurrentValue
		}
		portfolio.OutstandingDebt += pa.OutstandingLoan
	}
	portfolio.NetWorth = portfolio.TotalValue - portfolio.OutstandingDebt

	if totalNetWorth != nil && *totalNetWorth > 0 {
		portfolio.AllocationPct = common.RoundPercent(portfolio.NetWorth / *totalNetWorth * 100)
	}

	// Concentration: each asset's share of the real-estate total value only.
	// These are intra-sub-portfolio shares and are deliberately NOT corrected
	// to sum to 100 like the net-worth allocation breakdown.
	if portfolio.TotalValue > 0 {
		for _, pa := range perAsset {
			if pa.CurrentValue == nil {
				continue
			}
			portfolio.Concentration = append(portfolio.Concentration, models.ConcentrationEntry{
				AssetID:  pa.AssetID,
				Nickname: pa.Nickname,
				Value:    *pa.CurrentValue,
				Percent:  common.RoundPercent(*pa.CurrentValue / portfolio.TotalValue * 100),
			})
		}
		sort.SliceStable(portfolio.Concentration, func(i, j int) bool {
			return portfolio.Concentration[i].Value > portfolio.Concentration[j].Value
		})
	}

	return portfolio
}
