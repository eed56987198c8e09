package interfaces

import (
	"context"

	"github.com/wealthlens/wealthlens/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	InternalStore() InternalStore
	AssetStore() AssetStore
	HoldingStore() HoldingStore

	// DataPath returns the base data directory for rendered artifacts (charts).
	DataPath() string

	// WriteRaw writes arbitrary binary data under DataPath atomically.
	WriteRaw(subdir, key string, data []byte) error

	Close() error
}

// InternalStore manages user accounts and system-level KV.
type InternalStore interface {
	GetUser(ctx context.Context, userID string) (*models.InternalUser, error)
	GetUserByEmail(ctx context.Context, email string) (*models.InternalUser, error)
	SaveUser(ctx context.Context, user *models.InternalUser) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]string, error)

	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}

// AssetStore manages property records (with embedded loan and cashflow
// sub-records). The analytics core reads these as immutable snapshots.
type AssetStore interface {
	Get(ctx context.Context, userID, assetID string) (*models.PropertyAsset, error)
	List(ctx context.Context, userID string) ([]*models.PropertyAsset, error)
	Save(ctx context.Context, asset *models.PropertyAsset) error
	Delete(ctx context.Context, userID, assetID string) error
}

// HoldingStore manages non-property holdings used by the net-worth aggregator.
type HoldingStore interface {
	List(ctx context.Context, userID string) ([]*models.HoldingRecord, error)
	Save(ctx context.Context, holding *models.HoldingRecord) error
	Delete(ctx context.Context, userID, holdingID string) error
}
