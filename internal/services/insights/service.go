package insights

import (
	"context"
	"fmt"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/models"
)

// Service implements InsightService
type Service struct {
	analytics interfaces.AnalyticsService
	logger    *common.Logger
}

// NewService creates a new insight service
func NewService(analyticsService interfaces.AnalyticsService, logger *common.Logger) *Service {
	return &Service{
		analytics: analyticsService,
		logger:    logger,
	}
}

// PropertyAlerts evaluates the property-level rule set for one asset.
func (s *Service) PropertyAlerts(ctx context.Context, userID, assetID string) ([]models.Insight, error) {
	pa, err := s.analytics.ComputeAsset(ctx, userID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics for %s: %w", assetID, err)
	}

	alerts := EvaluatePropertyAlerts(pa)
	s.logger.Debug().
		Str("asset_id", assetID).
		Int("alerts", len(alerts)).
		Msg("Property alerts evaluated")

	return alerts, nil
}

// PortfolioInsights evaluates the portfolio-level rule set across every
// property the user holds.
func (s *Service) PortfolioInsights(ctx context.Context, userID string) ([]models.Insight, error) {
	result, err := s.analytics.ComputePortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute portfolio analytics: %w", err)
	}

	insights := EvaluatePortfolioInsights(result.PerAsset, &result.Portfolio)
	s.logger.Debug().
		Str("user_id", userID).
		Int("insights", len(insights)).
		Msg("Portfolio insights evaluated")

	return insights, nil
}

var _ interfaces.InsightService = (*Service)(nil)
