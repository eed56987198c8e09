package surrealdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/models"
)

// ErrAssetNotFound is returned when a lookup matches no asset record owned by
// the requesting user.
var ErrAssetNotFound = errors.New("asset not found")

// AssetStore persists property records with their embedded loan and cashflow
// sub-records in a single document.
type AssetStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewAssetStore(db *surrealdb.DB, logger *common.Logger) *AssetStore {
	return &AssetStore{
		db:     db,
		logger: logger,
	}
}

func (s *AssetStore) Get(ctx context.Context, userID, assetID string) (*models.PropertyAsset, error) {
	asset, err := surrealdb.Select[models.PropertyAsset](ctx, s.db, surrealmodels.NewRecordID("asset", assetID))
	if err != nil {
		return nil, fmt.Errorf("failed to select asset: %w", err)
	}
	if asset == nil || asset.UserID != userID {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}

func (s *AssetStore) List(ctx context.Context, userID string) ([]*models.PropertyAsset, error) {
	sql := "SELECT * FROM asset WHERE user_id = $user_id ORDER BY created_at"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.PropertyAsset](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	var assets []*models.PropertyAsset
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			assets = append(assets, &(*results)[0].Result[i])
		}
	}
	return assets, nil
}

func (s *AssetStore) Save(ctx context.Context, asset *models.PropertyAsset) error {
	sql := "UPSERT type::record('asset', $id) CONTENT $asset"
	vars := map[string]any{"id": asset.ID, "asset": asset}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.PropertyAsset](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save asset after retries: %w", err)
		}
	}
	return nil
}

func (s *AssetStore) Delete(ctx context.Context, userID, assetID string) error {
	// Ownership check before delete; record ids are global.
	if _, err := s.Get(ctx, userID, assetID); err != nil {
		return err
	}

	_, err := surrealdb.Delete[models.PropertyAsset](ctx, s.db, surrealmodels.NewRecordID("asset", assetID))
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

var _ interfaces.AssetStore = (*AssetStore)(nil)
