// Package insights evaluates threshold rules over analytics snapshots
package insights

import (
	"fmt"

	"github.com/wealthlens/wealthlens/internal/models"
)

// Fixed rule thresholds.
const (
	LowYieldThresholdPct       = 2.0
	HighLoanDependencyRatio    = 0.6
	HighConcentrationThreshold = 40.0
)

// EvaluatePropertyAlerts runs the property-level rule set against one
// analytics snapshot. Each rule decides independently and findings come out
// in rule-evaluation order, never re-sorted. Pure and deterministic: the same
// snapshot always yields the same list.
func EvaluatePropertyAlerts(pa *models.PropertyAnalytics) []models.Insight {
	if pa == nil {
		return nil
	}

	alerts := make([]models.Insight, 0, 4)

	if pa.EMIRentGap < 0 {
		alerts = append(alerts, models.Insight{
			ID:       "negative_cash_flow",
			Title:    "Negative cash flow",
			Severity: models.SeverityCritical,
			Metric:   "emi_rent_gap",
			Description: fmt.Sprintf("%s costs %.0f more per month than it earns in rent",
				pa.Nickname, -pa.EMIRentGap),
		})
	}

	if pa.NetRentalYieldPct != nil && *pa.NetRentalYieldPct < LowYieldThresholdPct {
		alerts = append(alerts, models.Insight{
			ID:       "low_rental_yield",
			Title:    "Low rental yield",
			Severity: models.SeverityWarning,
			Metric:   "net_rental_yield_pct",
			Description: fmt.Sprintf("%s yields %.2f%% net, below the %.0f%% threshold",
				pa.Nickname, *pa.NetRentalYieldPct, LowYieldThresholdPct),
		})
	}

	if pa.CurrentValue != nil && *pa.CurrentValue > 0 &&
		pa.OutstandingLoan / *pa.CurrentValue > HighLoanDependencyRatio {
		alerts = append(alerts, models.Insight{
			ID:       "high_loan_dependency",
			Title:    "High loan dependency",
			Severity: models.SeverityWarning,
			Metric:   "loan_to_value",
			Description: fmt.Sprintf("Outstanding loan on %s is %.0f%% of its current value",
				pa.Nickname, pa.OutstandingLoan / *pa.CurrentValue*100),
		})
	}

	if pa.ValuationStale {
		alerts = append(alerts, models.Insight{
			ID:       "stale_valuation",
			Title:    "Stale valuation",
			Severity: models.SeverityInfo,
			Metric:   "valuation_updated_at",
			Description: fmt.Sprintf("%s has no valuation update in the last 12 months",
				pa.Nickname),
		})
	}

	return alerts
}

// EvaluatePortfolioInsights runs the portfolio-level rule set. Counting rules
// aggregate across assets rather than emitting one finding per asset, so a
// ten-property portfolio with ten cash-flow-negative homes still produces a
// single insight.
func EvaluatePortfolioInsights(perAsset []models.PropertyAnalytics, portfolio *models.PortfolioAnalytics) []models.Insight {
	insights := make([]models.Insight, 0, 4)

	var negativeCashFlow, lowYield, stale int
	for _, pa := range perAsset {
		if pa.EMIRentGap < 0 {
			negativeCashFlow++
		}
		if pa.NetRentalYieldPct != nil && *pa.NetRentalYieldPct < LowYieldThresholdPct {
			lowYield++
		}
		if pa.ValuationStale {
			stale++
		}
	}

	if negativeCashFlow > 0 {
		insights = append(insights, models.Insight{
			ID:       "negative_cash_flow_count",
			Title:    "Cash-flow negative properties",
			Severity: models.SeverityWarning,
			Metric:   "emi_rent_gap",
			Description: fmt.Sprintf("%d of %d properties cost more in EMI than they earn in rent",
				negativeCashFlow, len(perAsset)),
		})
	}

	if lowYield > 0 {
		insights = append(insights, models.Insight{
			ID:       "low_yield_count",
			Title:    "Low-yield properties",
			Severity: models.SeverityInfo,
			Metric:   "net_rental_yield_pct",
			Description: fmt.Sprintf("%d of %d properties yield under %.0f%% net",
				lowYield, len(perAsset), LowYieldThresholdPct),
		})
	}

	if portfolio != nil && len(portfolio.Concentration) > 0 {
		top := portfolio.Concentration[0]
		if top.Percent > HighConcentrationThreshold {
			insights = append(insights, models.Insight{
				ID:       "high_concentration",
				Title:    "High single-property concentration",
				Severity: models.SeverityWarning,
				Metric:   "concentration",
				Description: fmt.Sprintf("%s is %.2f%% of your real-estate value, above the %.0f%% threshold",
					top.Nickname, top.Percent, HighConcentrationThreshold),
			})
		}
	}

	if stale > 0 {
		insights = append(insights, models.Insight{
			ID:       "stale_valuation_count",
			Title:    "Stale valuations",
			Severity: models.SeverityInfo,
			Metric:   "valuation_updated_at",
			Description: fmt.Sprintf("%d of %d properties have no valuation update in the last 12 months",
				stale, len(perAsset)),
		})
	}

	return insights
}
