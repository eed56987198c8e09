// Package storage provides the persistence factory.
package storage

import (
	"fmt"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/storage/surrealdb"
)

// NewStorageManager creates the configured storage backend. SurrealDB is the
// only backend today; the factory stays so callers never import the driver
// package directly.
func NewStorageManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	manager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return manager, nil
}
