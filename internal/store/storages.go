package store

import (
	"context"

	"licensegate/internal/config"
	"licensegate/internal/logger"
)

// Storages bundles every repository behind one constructor so the
// application wires a single value instead of three.
type Storages struct {
	LicenseRepository  LicenseRepository
	StrategyRepository StrategyRepository
	HistoryRepository  HistoryRepository
}

// NewStorages connects to PostgreSQL, applies all embedded migrations, and
// constructs the repositories on top of the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		LicenseRepository:  NewLicenseRepository(db, log),
		StrategyRepository: NewStrategyRepository(db, log),
		HistoryRepository:  NewHistoryRepository(db, log),
	}, nil
}
