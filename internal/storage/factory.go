package storage

import (
	"fmt"

	"uangku/internal/config"
	"uangku/internal/ledger"
)

// Open selects a store implementation from configuration.
func Open(cfg *config.Config) (ledger.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		return NewSQLiteRepository(cfg.SQLiteDBPath)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
