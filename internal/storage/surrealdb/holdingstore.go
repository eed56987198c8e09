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

// ErrHoldingNotFound is returned when a lookup matches no holding record
// owned by the requesting user.
var ErrHoldingNotFound = errors.New("holding not found")

// HoldingStore persists the non-property holdings that feed the net-worth
// aggregator.
type HoldingStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewHoldingStore(db *surrealdb.DB, logger *common.Logger) *HoldingStore {
	return &HoldingStore{
		db:     db,
		logger: logger,
	}
}

func (s *HoldingStore) List(ctx context.Context, userID string) ([]*models.HoldingRecord, error) {
	sql := "SELECT * FROM holding WHERE user_id = $user_id ORDER BY created_at"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.HoldingRecord](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	var holdings []*models.HoldingRecord
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			holdings = append(holdings, &(*results)[0].Result[i])
		}
	}
	return holdings, nil
}

func (s *HoldingStore) Save(ctx context.Context, holding *models.HoldingRecord) error {
	sql := "UPSERT type::record('holding', $id) CONTENT $holding"
	vars := map[string]any{"id": holding.ID, "holding": holding}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.HoldingRecord](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save holding after retries: %w", err)
		}
	}
	return nil
}

func (s *HoldingStore) Delete(ctx context.Context, userID, holdingID string) error {
	holding, err := surrealdb.Select[models.HoldingRecord](ctx, s.db, surrealmodels.NewRecordID("holding", holdingID))
	if err != nil {
		return fmt.Errorf("failed to select holding: %w", err)
	}
	if holding == nil || holding.UserID != userID {
		return ErrHoldingNotFound
	}

	if _, err := surrealdb.Delete[models.HoldingRecord](ctx, s.db, surrealmodels.NewRecordID("holding", holdingID)); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}

var _ interfaces.HoldingStore = (*HoldingStore)(nil)
