// Package simulation projects sell-vs-hold scenarios for a property
package simulation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/models"
	"github.com/wealthlens/wealthlens/internal/services/analytics"
)

// NeutralThreshold is the absolute net-proceeds difference below which the
// comparison reads "neutral". Differences smaller than this are rounding
// noise, not a signal.
const NeutralThreshold = 1000.0

// Run compares selling a property today against holding it for the given
// horizon. Returns nil when the property has no usable positive current
// value, since nothing is computable without it. Pure function of its inputs.
func Run(pa *models.PropertyAnalytics, assumptions models.SimulationAssumptions, now time.Time) *models.SellVsHoldResult {
	if pa == nil || pa.CurrentValue == nil || *pa.CurrentValue <= 0 {
		return nil
	}

	currentValue := *pa.CurrentValue
	result := &models.SellVsHoldResult{
		AssetID:     pa.AssetID,
		Assumptions: assumptions,
	}

	result.SellToday = sellBranch(currentValue, pa.PurchasePrice, pa.OutstandingLoan, assumptions)
	result.Hold = holdBranch(pa, currentValue, assumptions, now)

	result.Difference = result.Hold.NetProceeds - result.SellToday.NetProceeds
	if result.SellToday.NetProceeds != 0 {
		result.DifferencePct = common.RoundPercent(result.Difference / math.Abs(result.SellToday.NetProceeds) * 100)
	}

	switch {
	case math.Abs(result.Difference) < NeutralThreshold:
		result.BetterOption = models.RecommendNeutral
	case result.Difference > 0:
		result.BetterOption = models.RecommendHold
	default:
		result.BetterOption = models.RecommendSell
	}

	return result
}

// sellBranch nets out an immediate liquidation: exit costs on the gross
// value, capital-gains tax on the positive gain only, and loan repayment.
func sellBranch(currentValue, purchasePrice, outstandingLoan float64, a models.SimulationAssumptions) models.SellBranch {
	exitCosts := currentValue * a.ExitCostPct / 100
	gain := math.Max(0, currentValue-purchasePrice)
	tax := gain * a.CapitalGainsTaxPct / 100

	return models.SellBranch{
		GrossValue:      currentValue,
		ExitCosts:       exitCosts,
		CapitalGainsTax: tax,
		LoanRepayment:   outstandingLoan,
		NetProceeds:     currentValue - outstandingLoan - exitCosts - tax,
	}
}

// holdBranch simulates the holding horizon year by year. The loan balance
// scales with the constant loan-to-value ratio held from today, and the EMI
// runs for the full horizon even past the loan tenure.
func holdBranch(pa *models.PropertyAnalytics, currentValue float64, a models.SimulationAssumptions, now time.Time) models.HoldBranch {
	years := a.HoldingPeriodYears
	if years < 1 {
		years = 1
	}

	annualEMI := pa.MonthlyEMI * 12
	annualExpenses := pa.MonthlyExpenses * 12 // held flat across the horizon

	// Cash-flow series seeded with today's net equity as the outflow: holding
	// means forgoing the capital that selling would free up.
	netEquity := currentValue - pa.OutstandingLoan
	flows := []analytics.CashFlow{{Date: now, Amount: -netEquity}}

	hold := models.HoldBranch{
		Projections: make([]models.YearProjection, 0, years),
	}

	value := currentValue
	annualRent := pa.MonthlyRent * 12
	rentalSurplus := 0.0

	for year := 1; year <= years; year++ {
		value *= 1 + a.AppreciationRatePct/100
		if year > 1 {
			annualRent *= 1 + a.RentGrowthPct/100
		}

		netCashFlow := annualRent - annualEMI - annualExpenses
		rentalSurplus += netCashFlow

		hold.Projections = append(hold.Projections, models.YearProjection{
			Year:          year,
			PropertyValue: value,
			AnnualRent:    annualRent,
			NetCashFlow:   netCashFlow,
		})

		flows = append(flows, analytics.CashFlow{
			Date:   now.AddDate(year, 0, 0),
			Amount: netCashFlow,
		})
	}

	hold.TerminalValue = value

	// Loan-to-value held constant from today.
	ltv := 0.0
	if currentValue > 0 {
		ltv = pa.OutstandingLoan / currentValue
	}
	hold.TerminalLoanBalance = value * ltv

	exitCosts := value * a.ExitCostPct / 100
	gain := math.Max(0, value-pa.PurchasePrice)
	tax := gain * a.CapitalGainsTaxPct / 100
	hold.TerminalSaleNet = value - hold.TerminalLoanBalance - exitCosts - tax

	// Terminal sale proceeds land on the final year's flow.
	flows[len(flows)-1].Amount += hold.TerminalSaleNet

	hold.RentalSurplus = rentalSurplus
	hold.NetProceeds = hold.TerminalSaleNet + rentalSurplus

	if rate, ok := analytics.SolveXIRR(flows); ok {
		pct := rate * 100
		hold.XIRRPct = &pct
	}

	return hold
}

// Service implements SimulationService
type Service struct {
	storage   interfaces.StorageManager
	analytics interfaces.AnalyticsService
	logger    *common.Logger
	nowFn     func() time.Time
}

// Option configures the service
type Option func(*Service)

// WithClock overrides the wall clock for reproducible simulations.
func WithClock(nowFn func() time.Time) Option {
	return func(s *Service) {
		s.nowFn = nowFn
	}
}

// NewService creates a new simulation service
func NewService(storage interfaces.StorageManager, analyticsService interfaces.AnalyticsService, logger *common.Logger, opts ...Option) *Service {
	s := &Service{
		storage:   storage,
		analytics: analyticsService,
		logger:    logger,
		nowFn:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate runs the comparison for one property. A property without a usable
// current value returns (nil, nil): not simulatable, not an error.
func (s *Service) Simulate(ctx context.Context, userID, assetID string, assumptions models.SimulationAssumptions) (*models.SellVsHoldResult, error) {
	pa, err := s.analytics.ComputeAsset(ctx, userID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics for %s: %w", assetID, err)
	}

	result := Run(pa, assumptions, s.nowFn())
	if result == nil {
		s.logger.Debug().Str("asset_id", assetID).Msg("Property has no usable current value, skipping simulation")
		return nil, nil
	}

	s.logger.Debug().
		Str("asset_id", assetID).
		Str("better_option", result.BetterOption).
		Float64("difference", result.Difference).
		Msg("Sell-vs-hold simulation complete")

	return result, nil
}

var _ interfaces.SimulationService = (*Service)(nil)
