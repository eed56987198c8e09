package models

// Canonical asset classes for the net-worth breakdown. Labels outside this
// set pass through unchanged as their own class.
const (
	AssetClassEquity      = "equity"
	AssetClassMutualFunds = "mutual_funds"
	AssetClassFixedIncome = "fixed_income"
	AssetClassCash        = "cash"
	AssetClassRealEstate  = "real_estate"
	AssetClassGold        = "gold"
	AssetClassRetirement  = "retirement"
	AssetClassOther       = "other"
)

// AssetClassValue is one holding's raw (label, value) pair as supplied by the
// persistence layer. Labels may be inconsistently spelled or cased.
type AssetClassValue struct {
	AssetClass string  `json:"asset_class"`
	Value      float64 `json:"value"`
}

// AllocationEntry is one canonical class in the ranked allocation breakdown.
type AllocationEntry struct {
	AssetClass string  `json:"asset_class"`
	Value      float64 `json:"value"`   // rounded to whole units in output
	Percent    float64 `json:"percent"` // two decimals; all entries sum to 100.00
}

// NetWorthSummary is the aggregated net-worth view across all holding types.
type NetWorthSummary struct {
	TotalNetWorth float64           `json:"total_net_worth"`
	Allocation    []AllocationEntry `json:"allocation"` // sorted descending by value
}
