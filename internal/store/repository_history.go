package store

import (
	"context"
	"fmt"

	"licensegate/internal/logger"
	"licensegate/models"
)

// historyRepository is the PostgreSQL-backed implementation of
// [HistoryRepository]. The "betting_history" table is append-only: rows are
// inserted here and aggregated, never updated or deleted directly.
type historyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewHistoryRepository constructs a [HistoryRepository] backed by the
// provided database connection and logger.
func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	logger.Debug().Msg("creating history repository")
	return &historyRepository{
		db:     db,
		logger: logger,
	}
}

// Append writes one history record. The database assigns ID and the
// timestamp; both are written back into the returned record.
func (r *historyRepository) Append(ctx context.Context, record models.HistoryRecord) (models.HistoryRecord, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, appendHistoryRecord,
		record.LicenseKey, record.Action, record.Amount, record.LiveBalance, record.Profit)

	if err := row.Scan(&record.ID, &record.RecordedAt); err != nil {
		log.Err(err).Str("func", "*historyRepository.Append").
			Str("key", logger.KeyPrefix(record.LicenseKey)).
			Str("action", record.Action).
			Msg("error: history append failed")
		return models.HistoryRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// goalUpdateAttempts bounds how many times the goal-update transaction is
// run when the database reports a retryable failure (deadlock, serialization
// rollback).
const goalUpdateAttempts = 3

// AppendWithGoalUpdate applies a goal change and its ledger entry as one
// atomic unit: UPDATE strategies.max_goal, then INSERT the history record,
// inside a single transaction.
//
// A zero-row UPDATE means the license has no strategy configuration; the
// transaction is rolled back and [ErrStrategyNotFound] is returned so the
// caller sees no partial state. Any later failure likewise rolls back the
// goal change. Retryable failures rerun the whole transaction up to
// goalUpdateAttempts times.
func (r *historyRepository) AppendWithGoalUpdate(ctx context.Context, record models.HistoryRecord, maxGoal float64) (models.HistoryRecord, error) {
	var (
		stored models.HistoryRecord
		err    error
	)

	for attempt := 1; attempt <= goalUpdateAttempts; attempt++ {
		stored, err = r.appendWithGoalUpdateTx(ctx, record, maxGoal)
		if err == nil || r.db.errorClassificator.Classify(err) == NonRetryable {
			return stored, err
		}
		logger.FromContext(ctx).Warn().Err(err).
			Str("key", logger.KeyPrefix(record.LicenseKey)).
			Int("attempt", attempt).
			Msg("retrying goal update transaction")
	}

	return stored, err
}

func (r *historyRepository) appendWithGoalUpdateTx(ctx context.Context, record models.HistoryRecord, maxGoal float64) (models.HistoryRecord, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.AppendWithGoalUpdate").
			Str("key", logger.KeyPrefix(record.LicenseKey)).
			Msg("failed to begin transaction")
		return models.HistoryRecord{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, updateStrategyMaxGoal, maxGoal, record.LicenseKey)
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.AppendWithGoalUpdate").
			Str("key", logger.KeyPrefix(record.LicenseKey)).
			Msg("failed to update max_goal")
		return models.HistoryRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.HistoryRecord{}, ErrStrategyNotFound
	}

	row := tx.QueryRowContext(ctx, appendHistoryRecord,
		record.LicenseKey, record.Action, record.Amount, record.LiveBalance, record.Profit)
	if err := row.Scan(&record.ID, &record.RecordedAt); err != nil {
		log.Err(err).Str("func", "*historyRepository.AppendWithGoalUpdate").
			Str("key", logger.KeyPrefix(record.LicenseKey)).
			Msg("failed to append history record in transaction")
		return models.HistoryRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "*historyRepository.AppendWithGoalUpdate").
			Str("key", logger.KeyPrefix(record.LicenseKey)).
			Msg("failed to commit transaction")
		return models.HistoryRecord{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return record, nil
}

// StatsByKey aggregates the license's history records by action kind.
// Returns an empty slice (not an error) for a license with no history.
func (r *historyRepository) StatsByKey(ctx context.Context, licenseKey string) ([]models.ActionStats, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildStatsQuery(licenseKey)
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.StatsByKey").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.StatsByKey").
			Str("key", logger.KeyPrefix(licenseKey)).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	stats := make([]models.ActionStats, 0, 8)
	for rows.Next() {
		var s models.ActionStats
		if scanErr := rows.Scan(&s.Action, &s.Count, &s.TotalAmount, &s.TotalProfit); scanErr != nil {
			log.Err(scanErr).Str("func", "*historyRepository.StatsByKey").Msg("failed to scan stats row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		stats = append(stats, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*historyRepository.StatsByKey").Msg("row iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return stats, nil
}
