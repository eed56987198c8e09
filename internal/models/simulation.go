package models

// SimulationAssumptions are the user-supplied inputs for a sell-vs-hold run.
type SimulationAssumptions struct {
	ExitCostPct         float64 `json:"exit_cost_pct"`
	CapitalGainsTaxPct  float64 `json:"capital_gains_tax_pct"`
	HoldingPeriodYears  int     `json:"holding_period_years"`
	AppreciationRatePct float64 `json:"appreciation_rate_pct"` // expected annual price appreciation
	RentGrowthPct       float64 `json:"rent_growth_pct"`       // expected annual rent growth
}

// SellBranch is the immediate-liquidation side of the comparison.
type SellBranch struct {
	GrossValue      float64 `json:"gross_value"`
	ExitCosts       float64 `json:"exit_costs"`
	CapitalGainsTax float64 `json:"capital_gains_tax"`
	LoanRepayment   float64 `json:"loan_repayment"`
	NetProceeds     float64 `json:"net_proceeds"`
}

// YearProjection is one simulated year of the hold branch.
type YearProjection struct {
	Year          int     `json:"year"`
	PropertyValue float64 `json:"property_value"`
	AnnualRent    float64 `json:"annual_rent"`
	NetCashFlow   float64 `json:"net_cash_flow"` // rent − EMI − expenses
}

// HoldBranch is the continued-holding side of the comparison.
type HoldBranch struct {
	Projections         []YearProjection `json:"projections"`
	TerminalValue       float64          `json:"terminal_value"`
	TerminalLoanBalance float64          `json:"terminal_loan_balance"`
	TerminalSaleNet     float64          `json:"terminal_sale_net"` // terminal sale proceeds after exit costs + tax + loan
	RentalSurplus       float64          `json:"rental_surplus"`    // cumulative rent − EMI − expenses over horizon
	NetProceeds         float64          `json:"net_proceeds"`      // terminal sale net + rental surplus
	XIRRPct             *float64         `json:"xirr_pct"`          // nil when the solver reports no result
}

// Recommendation values for SellVsHoldResult.BetterOption.
const (
	RecommendHold    = "hold"
	RecommendSell    = "sell"
	RecommendNeutral = "neutral"
)

// SellVsHoldResult is the structured comparison of the two scenarios.
type SellVsHoldResult struct {
	AssetID       string                `json:"asset_id"`
	Assumptions   SimulationAssumptions `json:"assumptions"`
	SellToday     SellBranch            `json:"sell_today"`
	Hold          HoldBranch            `json:"hold"`
	Difference    float64               `json:"difference"`     // hold − sell net proceeds
	DifferencePct float64               `json:"difference_pct"` // relative to sell net proceeds, 0 when sell is 0
	BetterOption  string                `json:"better_option"`  // hold | sell | neutral
}
