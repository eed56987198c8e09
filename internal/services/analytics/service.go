package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/models"
)

// Service implements AnalyticsService
type Service struct {
	storage  interfaces.StorageManager
	networth interfaces.NetWorthService
	logger   *common.Logger
	nowFn    func() time.Time
}

// Option configures the service
type Option func(*Service)

// WithClock overrides the wall clock, keeping analytics reproducible in tests.
func WithClock(nowFn func() time.Time) Option {
	return func(s *Service) {
		s.nowFn = nowFn
	}
}

// NewService creates a new analytics service
func NewService(storage interfaces.StorageManager, networth interfaces.NetWorthService, logger *common.Logger, opts ...Option) *Service {
	s := &Service{
		storage:  storage,
		networth: networth,
		logger:   logger,
		nowFn:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputePortfolio loads the user's properties and derives per-asset and
// portfolio analytics for the current snapshot.
func (s *Service) ComputePortfolio(ctx context.Context, userID string) (*models.AnalyticsResult, error) {
	assets, err := s.storage.AssetStore().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	now := s.nowFn()
	perAsset := make([]models.PropertyAnalytics, 0, len(assets))
	for _, asset := range assets {
		perAsset = append(perAsset, ComputeAsset(AdjustOwnership(asset), now))
	}

	// The overall net worth feeds the allocation percentage. Its absence is
	// not an error, the percentage just reads zero.
	var totalNetWorth *float64
	if summary, err := s.networth.Summary(ctx, userID); err == nil && summary != nil {
		totalNetWorth = &summary.TotalNetWorth
	} else if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Net worth unavailable for allocation percent")
	}

	result := &models.AnalyticsResult{
		PerAsset:  perAsset,
		Portfolio: ComputePortfolio(perAsset, totalNetWorth),
		AsOf:      now,
	}

	s.logger.Debug().
		Str("user_id", userID).
		Int("properties", len(perAsset)).
		Float64("total_value", result.Portfolio.TotalValue).
		Msg("Computed portfolio analytics")

	return result, nil
}

// ComputeAsset derives analytics for a single property.
func (s *Service) ComputeAsset(ctx context.Context, userID, assetID string) (*models.PropertyAnalytics, error) {
	asset, err := s.storage.AssetStore().Get(ctx, userID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get property %s: %w", assetID, err)
	}

	pa := ComputeAsset(AdjustOwnership(asset), s.nowFn())
	return &pa, nil
}

var _ interfaces.AnalyticsService = (*Service)(nil)
