package models

import "time"

// ValuationSource records which valuation strategy produced a current value,
// so callers and tests can assert provenance.
type ValuationSource string

const (
	ValuationUserOverride     ValuationSource = "user_override"
	ValuationEstimateMidpoint ValuationSource = "estimate_midpoint"
	ValuationPurchasePrice    ValuationSource = "purchase_price"
	ValuationNone             ValuationSource = "none"
)

// PropertyAnalytics holds the derived metrics for one property. Nullable
// metrics are pointers: nil means "not computable from the available inputs",
// which is distinct from zero.
type PropertyAnalytics struct {
	AssetID      string `json:"asset_id"`
	Nickname     string `json:"nickname"`
	City         string `json:"city,omitempty"`
	PropertyType string `json:"property_type,omitempty"`

	CurrentValue    *float64        `json:"current_value"`
	ValuationSource ValuationSource `json:"valuation_source"`

	PurchasePrice      float64  `json:"purchase_price"`
	UnrealizedGain     *float64 `json:"unrealized_gain"`
	XIRRPct            *float64 `json:"xirr_pct"`
	NetRentalYieldPct  *float64 `json:"net_rental_yield_pct"`
	EMIRentGap         float64  `json:"emi_rent_gap"` // monthly rent − monthly EMI; negative = cash-flow negative
	HoldingPeriodYears *float64 `json:"holding_period_years"`

	OutstandingLoan float64 `json:"outstanding_loan"`
	MonthlyRent     float64 `json:"monthly_rent"`
	MonthlyEMI      float64 `json:"monthly_emi"`
	MonthlyExpenses float64 `json:"monthly_expenses"` // maintenance + tax/12 + other

	RentalStatus       RentalStatus `json:"rental_status"`
	ValuationStale     bool         `json:"valuation_stale"`
	ValuationUpdatedAt *time.Time   `json:"valuation_updated_at,omitempty"`
}

// ConcentrationEntry is one asset's share of the real-estate sub-portfolio.
type ConcentrationEntry struct {
	AssetID  string  `json:"asset_id"`
	Nickname string  `json:"nickname"`
	Value    float64 `json:"value"`
	Percent  float64 `json:"percent"`
}

// PortfolioAnalytics aggregates per-property results across the real-estate
// sub-portfolio. Concentration percentages describe intra-real-estate shares
// and are NOT forced to sum to 100; that invariant belongs to the net-worth
// allocation breakdown, a different semantic.
type PortfolioAnalytics struct {
	TotalValue      float64 `json:"total_value"`
	OutstandingDebt float64 `json:"outstanding_debt"`
	NetWorth        float64 `json:"net_worth"`

	// Share of the user's overall net worth, 0 when the overall figure is
	// absent or zero.
	AllocationPct float64 `json:"allocation_pct"`

	Concentration []ConcentrationEntry `json:"concentration"` // sorted descending by value
}

// AnalyticsResult is the full output of one analytics invocation.
type AnalyticsResult struct {
	PerAsset  []PropertyAnalytics `json:"per_asset"`
	Portfolio PortfolioAnalytics  `json:"portfolio"`
	AsOf      time.Time           `json:"as_of"`
}
