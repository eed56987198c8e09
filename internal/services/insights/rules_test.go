package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthlens/wealthlens/internal/models"
)

func fptr(v float64) *float64 { return &v }

func alertIDs(alerts []models.Insight) []string {
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestEvaluatePropertyAlerts_NegativeCashFlow(t *testing.T) {
	// Rent 20000 against EMI 25000 leaves a -5000 monthly gap.
	pa := &models.PropertyAnalytics{
		AssetID:    "property:flat",
		Nickname:   "Pune Flat",
		EMIRentGap: 20_000 - 25_000,
	}

	alerts := EvaluatePropertyAlerts(pa)
	require.NotEmpty(t, alerts)

	assert.Equal(t, "negative_cash_flow", alerts[0].ID)
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
	assert.Contains(t, alerts[0].Description, "5000")
}

func TestEvaluatePropertyAlerts_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		pa       models.PropertyAnalytics
		expected []string
	}{
		{
			name: "healthy property emits nothing",
			pa: models.PropertyAnalytics{
				CurrentValue:      fptr(10_000_000),
				NetRentalYieldPct: fptr(3.5),
				EMIRentGap:        5000,
				OutstandingLoan:   2_000_000,
			},
		},
		{
			name: "low yield",
			pa: models.PropertyAnalytics{
				CurrentValue:      fptr(10_000_000),
				NetRentalYieldPct: fptr(1.5),
			},
			expected: []string{"low_rental_yield"},
		},
		{
			name: "yield exactly at threshold does not fire",
			pa: models.PropertyAnalytics{
				CurrentValue:      fptr(10_000_000),
				NetRentalYieldPct: fptr(2.0),
			},
		},
		{
			name: "nil yield never fires the yield rule",
			pa:   models.PropertyAnalytics{CurrentValue: fptr(10_000_000)},
		},
		{
			name: "high loan dependency",
			pa: models.PropertyAnalytics{
				CurrentValue:    fptr(10_000_000),
				OutstandingLoan: 7_000_000,
			},
			expected: []string{"high_loan_dependency"},
		},
		{
			name: "loan ratio exactly at threshold does not fire",
			pa: models.PropertyAnalytics{
				CurrentValue:    fptr(10_000_000),
				OutstandingLoan: 6_000_000,
			},
		},
		{
			name:     "stale valuation",
			pa:       models.PropertyAnalytics{CurrentValue: fptr(10_000_000), ValuationStale: true},
			expected: []string{"stale_valuation"},
		},
		{
			name: "everything wrong at once, rule order preserved",
			pa: models.PropertyAnalytics{
				CurrentValue:      fptr(10_000_000),
				NetRentalYieldPct: fptr(0.5),
				EMIRentGap:        -10_000,
				OutstandingLoan:   8_000_000,
				ValuationStale:    true,
			},
			expected: []string{"negative_cash_flow", "low_rental_yield", "high_loan_dependency", "stale_valuation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := EvaluatePropertyAlerts(&tt.pa)
			if len(tt.expected) == 0 {
				assert.Empty(t, alerts)
			} else {
				assert.Equal(t, tt.expected, alertIDs(alerts))
			}
		})
	}
}

func TestEvaluatePropertyAlerts_Deterministic(t *testing.T) {
	pa := &models.PropertyAnalytics{
		Nickname:          "Goa Villa",
		CurrentValue:      fptr(20_000_000),
		NetRentalYieldPct: fptr(1.0),
		EMIRentGap:        -2000,
		ValuationStale:    true,
	}

	first := EvaluatePropertyAlerts(pa)
	second := EvaluatePropertyAlerts(pa)
	assert.Equal(t, first, second)
}

func TestEvaluatePortfolioInsights_Counts(t *testing.T) {
	perAsset := []models.PropertyAnalytics{
		{EMIRentGap: -5000, NetRentalYieldPct: fptr(1.0), ValuationStale: true},
		{EMIRentGap: 3000, NetRentalYieldPct: fptr(4.0)},
		{EMIRentGap: -1000, ValuationStale: true},
	}

	insights := EvaluatePortfolioInsights(perAsset, &models.PortfolioAnalytics{})
	require.Equal(t, []string{"negative_cash_flow_count", "low_yield_count", "stale_valuation_count"}, alertIDs(insights))

	assert.Equal(t, models.SeverityWarning, insights[0].Severity)
	assert.Contains(t, insights[0].Description, "2 of 3")
	// The trigger compares rent against EMI only, so the wording must not
	// claim expenses are part of the gap.
	assert.NotContains(t, insights[0].Description, "expenses")
	assert.Equal(t, models.SeverityInfo, insights[1].Severity)
	assert.Contains(t, insights[1].Description, "1 of 3")
	assert.Contains(t, insights[2].Description, "2 of 3")
}

func TestEvaluatePortfolioInsights_Concentration(t *testing.T) {
	portfolio := &models.PortfolioAnalytics{
		Concentration: []models.ConcentrationEntry{
			{AssetID: "property:big", Nickname: "Mumbai 3BHK", Value: 15_000_000, Percent: 75.0},
			{AssetID: "property:small", Nickname: "Indore Plot", Value: 5_000_000, Percent: 25.0},
		},
	}

	insights := EvaluatePortfolioInsights(nil, portfolio)
	require.Len(t, insights, 1)
	assert.Equal(t, "high_concentration", insights[0].ID)
	assert.Equal(t, models.SeverityWarning, insights[0].Severity)
	assert.Contains(t, insights[0].Description, "Mumbai 3BHK")

	// A 40% top share sits on the boundary and does not fire.
	portfolio.Concentration[0].Percent = 40.0
	assert.Empty(t, EvaluatePortfolioInsights(nil, portfolio))
}

func TestEvaluatePortfolioInsights_CleanPortfolio(t *testing.T) {
	perAsset := []models.PropertyAnalytics{
		{EMIRentGap: 3000, NetRentalYieldPct: fptr(4.0)},
		{EMIRentGap: 1000, NetRentalYieldPct: fptr(2.5)},
	}
	assert.Empty(t, EvaluatePortfolioInsights(perAsset, &models.PortfolioAnalytics{}))
}

func TestSeverityOrder(t *testing.T) {
	assert.Greater(t, models.SeverityCritical.Rank(), models.SeverityWarning.Rank())
	assert.Greater(t, models.SeverityWarning.Rank(), models.SeverityInfo.Rank())
	assert.Greater(t, models.SeverityInfo.Rank(), models.Severity("bogus").Rank())
}
