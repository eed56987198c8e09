// Package interfaces defines service contracts for WealthLens
package interfaces

import (
	"context"

	"github.com/wealthlens/wealthlens/internal/models"
)

// AnalyticsService computes real-estate analytics for a user's properties.
type AnalyticsService interface {
	// ComputePortfolio loads the user's properties and returns per-asset and
	// portfolio analytics. totalNetWorth is looked up via the net-worth
	// aggregator to derive the real-estate allocation percentage.
	ComputePortfolio(ctx context.Context, userID string) (*models.AnalyticsResult, error)

	// ComputeAsset returns analytics for a single property.
	ComputeAsset(ctx context.Context, userID, assetID string) (*models.PropertyAnalytics, error)
}

// NetWorthService aggregates all holdings into a net-worth breakdown.
type NetWorthService interface {
	// Summary aggregates every holding (properties included) for the user.
	Summary(ctx context.Context, userID string) (*models.NetWorthSummary, error)
}

// SimulationService projects sell-vs-hold scenarios.
type SimulationService interface {
	// Simulate runs the comparison for one property. Returns (nil, nil) when
	// the property cannot be simulated (no usable current value).
	Simulate(ctx context.Context, userID, assetID string, assumptions models.SimulationAssumptions) (*models.SellVsHoldResult, error)
}

// InsightService evaluates the threshold rule engines.
type InsightService interface {
	// PropertyAlerts evaluates property-level rules for one asset.
	PropertyAlerts(ctx context.Context, userID, assetID string) ([]models.Insight, error)

	// PortfolioInsights evaluates portfolio-level rules across all assets.
	PortfolioInsights(ctx context.Context, userID string) ([]models.Insight, error)
}

// CopilotService screens queries through guardrails and answers via Gemini.
type CopilotService interface {
	Query(ctx context.Context, userID, text string) (*models.CopilotResponse, error)
}
