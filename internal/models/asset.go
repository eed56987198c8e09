// Package models defines data structures for WealthLens
package models

import "time"

// RentalStatus describes how a property is currently occupied.
type RentalStatus string

const (
	RentalStatusSelfOccupied RentalStatus = "self_occupied"
	RentalStatusRented       RentalStatus = "rented"
	RentalStatusVacant       RentalStatus = "vacant"
)

// PropertyAsset is a real-estate holding as stored. It is a read-only snapshot
// for the analytics engine: the engine never mutates or persists it.
type PropertyAsset struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Nickname      string     `json:"nickname"`
	City          string     `json:"city"`
	PropertyType  string     `json:"property_type"` // apartment, plot, villa, commercial
	OwnershipPct  *float64   `json:"ownership_pct,omitempty"` // 0–100, nil → 100
	PurchasePrice float64    `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`

	// Current-value sources, in fallback order: user override, then system
	// estimate range, then purchase price.
	UserValue   *float64 `json:"user_value,omitempty"`
	EstimateMin *float64 `json:"estimate_min,omitempty"`
	EstimateMax *float64 `json:"estimate_max,omitempty"`

	ValuationUpdatedAt *time.Time `json:"valuation_updated_at,omitempty"`

	Loan     *PropertyLoan     `json:"loan,omitempty"`
	Cashflow *PropertyCashflow `json:"cashflow,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PropertyLoan is the optional loan attached to a property (at most one).
// Invariant: OutstandingBalance <= LoanAmount.
type PropertyLoan struct {
	Lender             string  `json:"lender"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRatePct    float64 `json:"interest_rate_pct"`
	EMI                float64 `json:"emi"` // monthly
	OutstandingBalance float64 `json:"outstanding_balance"`
	TenureMonths       int     `json:"tenure_months"`
}

// PropertyCashflow is the optional rental cashflow record for a property.
// Invariant: when Status is "rented", MonthlyRent must be positive.
type PropertyCashflow struct {
	Status             RentalStatus `json:"status"`
	MonthlyRent        float64      `json:"monthly_rent"`
	RentEscalationPct  float64      `json:"rent_escalation_pct"`
	MonthlyMaintenance float64      `json:"monthly_maintenance"`
	AnnualPropertyTax  float64      `json:"annual_property_tax"`
	OtherMonthlyCosts  float64      `json:"other_monthly_costs"`
}

// OwnershipShare returns the holder's fractional ownership (0–1), defaulting
// to full ownership when the percentage is absent.
func (a *PropertyAsset) OwnershipShare() float64 {
	if a.OwnershipPct == nil {
		return 1.0
	}
	return *a.OwnershipPct / 100.0
}

// AdjustedAsset is a PropertyAsset with every monetary field scaled by the
// holder's ownership share. Derived and ephemeral, built fresh per analytics
// request, never persisted. No rounding is applied here.
type AdjustedAsset struct {
	Asset *PropertyAsset // original record, for non-monetary fields

	PurchasePrice      float64
	UserValue          *float64
	EstimateMin        *float64
	EstimateMax        *float64
	OutstandingBalance float64
	MonthlyEMI         float64
	MonthlyRent        float64
	MonthlyMaintenance float64
	AnnualPropertyTax  float64
	OtherMonthlyCosts  float64
	RentalStatus       RentalStatus
}
