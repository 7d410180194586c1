package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"licensegate/internal/logger"
	"licensegate/models"

	"github.com/jackc/pgerrcode"
)

// strategyRepository is the PostgreSQL-backed implementation of
// [StrategyRepository]. One row per license in the "strategies" table; the
// payload column is stored and returned as raw JSON without inspection.
type strategyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStrategyRepository constructs a [StrategyRepository] backed by the
// provided database connection and logger.
func NewStrategyRepository(db *DB, logger *logger.Logger) StrategyRepository {
	logger.Debug().Msg("creating strategy repository")
	return &strategyRepository{
		db:     db,
		logger: logger,
	}
}

// FindByKey loads the strategy configuration of a license.
//
// Error handling:
//   - sql.ErrNoRows → [ErrStrategyNotFound] (the caller decides whether that
//     means "synthesize a default" or "reject the operation").
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *strategyRepository) FindByKey(ctx context.Context, licenseKey string) (models.Strategy, error) {
	log := logger.FromContext(ctx)

	var found models.Strategy
	row := r.db.QueryRowContext(ctx, findStrategyByKey, licenseKey)

	if err := row.Scan(&found.LicenseKey, &found.Data, &found.MaxGoal, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Strategy{}, ErrStrategyNotFound
		}

		log.Err(err).Str("func", "*strategyRepository.FindByKey").
			Str("key", logger.KeyPrefix(licenseKey)).
			Msg("error: strategy lookup failed")
		return models.Strategy{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// Upsert inserts or wholly replaces the strategy configuration of a license.
// The ON CONFLICT clause makes the replace idempotent: payload and max_goal
// are overwritten, never merged.
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) → [ErrNoLicenseFound]
//     (a strategy row must reference an existing license).
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *strategyRepository) Upsert(ctx context.Context, strategy models.Strategy) error {
	log := logger.FromContext(ctx)

	data := strategy.Data
	if data == nil {
		data = []byte("{}")
	}

	if _, err := r.db.ExecContext(ctx, upsertStrategy, strategy.LicenseKey, data, strategy.MaxGoal); err != nil {
		log.Err(err).Str("func", "*strategyRepository.Upsert").
			Str("key", logger.KeyPrefix(strategy.LicenseKey)).
			Msg("error: strategy upsert failed")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return ErrNoLicenseFound
		default:
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return nil
}
