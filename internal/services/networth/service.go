// Package networth aggregates holdings into a net-worth breakdown
package networth

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/models"
)

// classSynonyms maps raw labels (lower-cased, trimmed) to canonical classes.
// Unmapped labels pass through unchanged as their own class.
var classSynonyms = map[string]string{
	"equity":        models.AssetClassEquity,
	"equities":      models.AssetClassEquity,
	"stock":         models.AssetClassEquity,
	"stocks":        models.AssetClassEquity,
	"shares":        models.AssetClassEquity,
	"direct equity": models.AssetClassEquity,

	"mf":            models.AssetClassMutualFunds,
	"mutual fund":   models.AssetClassMutualFunds,
	"mutual funds":  models.AssetClassMutualFunds,
	"mutual_funds":  models.AssetClassMutualFunds,
	"sip":           models.AssetClassMutualFunds,

	"fd":             models.AssetClassFixedIncome,
	"fixed deposit":  models.AssetClassFixedIncome,
	"fixed deposits": models.AssetClassFixedIncome,
	"fixed income":   models.AssetClassFixedIncome,
	"fixed_income":   models.AssetClassFixedIncome,
	"bond":           models.AssetClassFixedIncome,
	"bonds":          models.AssetClassFixedIncome,
	"debt":           models.AssetClassFixedIncome,

	"cash":    models.AssetClassCash,
	"savings": models.AssetClassCash,
	"bank":    models.AssetClassCash,

	"real estate": models.AssetClassRealEstate,
	"real_estate": models.AssetClassRealEstate,
	"realestate":  models.AssetClassRealEstate,
	"property":    models.AssetClassRealEstate,
	"properties":  models.AssetClassRealEstate,

	"gold":            models.AssetClassGold,
	"sgb":             models.AssetClassGold,
	"sovereign gold":  models.AssetClassGold,
	"gold etf":        models.AssetClassGold,
	"digital gold":    models.AssetClassGold,

	"retirement": models.AssetClassRetirement,
	"epf":        models.AssetClassRetirement,
	"ppf":        models.AssetClassRetirement,
	"nps":        models.AssetClassRetirement,
	"pension":    models.AssetClassRetirement,

	"other":  models.AssetClassOther,
	"others": models.AssetClassOther,
	"misc":   models.AssetClassOther,
}

// CanonicalClass normalises a raw asset-class label. Unknown labels pass
// through lower-cased and trimmed.
func CanonicalClass(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := classSynonyms[key]; ok {
		return canonical
	}
	return key
}

// Aggregate sums values per canonical class and produces the ranked
// allocation breakdown. Invalid values (NaN, negative) are silently skipped
// upstream data noise, not an error. Percentages are computed on unrounded
// values; currency is rounded to whole units only in the final output. After
// rounding every percentage to two decimals, any drift from 100.00 is added
// in full to the largest allocation (see common.CorrectPercentageDrift).
// A zero or empty total yields an empty breakdown with total 0.
func Aggregate(values []models.AssetClassValue) models.NetWorthSummary {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, v := range values {
		if math.IsNaN(v.Value) || v.Value < 0 {
			continue
		}
		class := CanonicalClass(v.AssetClass)
		if class == "" {
			class = models.AssetClassOther
		}
		if _, seen := totals[class]; !seen {
			order = append(order, class)
		}
		totals[class] += v.Value
	}

	total := 0.0
	for _, v := range totals {
		total += v
	}

	if total <= 0 {
		return models.NetWorthSummary{TotalNetWorth: 0, Allocation: []models.AllocationEntry{}}
	}

	allocation := make([]models.AllocationEntry, 0, len(totals))
	for _, class := range order {
		allocation = append(allocation, models.AllocationEntry{
			AssetClass: class,
			Value:      totals[class],
			Percent:    common.RoundPercent(totals[class] / total * 100),
		})
	}

	sort.SliceStable(allocation, func(i, j int) bool {
		return allocation[i].Value > allocation[j].Value
	})

	// The largest allocation is first after the sort; it absorbs any
	// rounding drift so the displayed breakdown sums to exactly 100.00.
	percents := make([]float64, len(allocation))
	for i := range allocation {
		percents[i] = allocation[i].Percent
	}
	common.CorrectPercentageDrift(percents, 0)
	for i := range allocation {
		allocation[i].Percent = percents[i]
		allocation[i].Value = common.RoundCurrency(allocation[i].Value)
	}

	return models.NetWorthSummary{
		TotalNetWorth: common.RoundCurrency(total),
		Allocation:    allocation,
	}
}

// Service implements NetWorthService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new net-worth service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// Summary aggregates every holding the user has: generic holdings plus the
// net equity of each property (current value less outstanding loan).
func (s *Service) Summary(ctx context.Context, userID string) (*models.NetWorthSummary, error) {
	holdings, err := s.storage.HoldingStore().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	values := make([]models.AssetClassValue, 0, len(holdings))
	for _, h := range holdings {
		values = append(values, models.AssetClassValue{AssetClass: h.AssetClass, Value: h.Value})
	}

	assets, err := s.storage.AssetStore().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	for _, asset := range assets {
		if v := propertyNetValue(asset); v > 0 {
			values = append(values, models.AssetClassValue{AssetClass: models.AssetClassRealEstate, Value: v})
		}
	}

	summary := Aggregate(values)

	s.logger.Debug().
		Str("user_id", userID).
		Int("holdings", len(values)).
		Float64("total", summary.TotalNetWorth).
		Msg("Aggregated net worth")

	return &summary, nil
}

// propertyNetValue is the ownership-adjusted current value of a property less
// its outstanding loan, using the same valuation fallback order as the
// analytics engine: user override, estimate midpoint, purchase price.
func propertyNetValue(asset *models.PropertyAsset) float64 {
	share := asset.OwnershipShare()

	var value float64
	switch {
	case asset.UserValue != nil:
		value = *asset.UserValue
	case asset.EstimateMin != nil && asset.EstimateMax != nil:
		value = (*asset.EstimateMin + *asset.EstimateMax) / 2
	default:
		value = asset.PurchasePrice
	}

	net := value * share
	if asset.Loan != nil {
		net -= asset.Loan.OutstandingBalance * share
	}
	return net
}

var _ interfaces.NetWorthService = (*Service)(nil)
