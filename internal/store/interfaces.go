package store

import (
	"context"

	"licensegate/models"
)

// LicenseRepository is the persistence contract for license accounts.
type LicenseRepository interface {
	// CreateLicense persists a new license and returns it with
	// server-assigned fields (ID, CreatedAt) populated.
	// Returns ErrUsernameExists or ErrLicenseKeyExists on duplicates.
	CreateLicense(ctx context.Context, license models.License) (models.License, error)

	// FindByKey looks a license up by its key.
	// Returns ErrNoLicenseFound when no row matches.
	FindByKey(ctx context.Context, licenseKey string) (models.License, error)

	// ListLicenses returns every license account, ordered by ID.
	ListLicenses(ctx context.Context) ([]models.License, error)

	// DeleteByKey removes a license; its strategy and history rows are
	// removed by the database cascade.
	// Returns ErrNoLicenseFound when no row matches.
	DeleteByKey(ctx context.Context, licenseKey string) error
}

// StrategyRepository is the persistence contract for per-license strategy
// configurations.
type StrategyRepository interface {
	// FindByKey loads the strategy configuration of a license.
	// Returns ErrStrategyNotFound when the license has no configuration row.
	FindByKey(ctx context.Context, licenseKey string) (models.Strategy, error)

	// Upsert inserts or wholly replaces the strategy configuration of a
	// license. Returns ErrNoLicenseFound when the license does not exist.
	Upsert(ctx context.Context, strategy models.Strategy) error
}

// HistoryRepository is the persistence contract for the append-only action
// ledger.
type HistoryRepository interface {
	// Append writes one history record with a server-assigned timestamp and
	// returns it with ID and RecordedAt populated.
	Append(ctx context.Context, record models.HistoryRecord) (models.HistoryRecord, error)

	// AppendWithGoalUpdate atomically sets the license's strategy max_goal
	// and appends the record: both writes happen in one transaction or not
	// at all. Returns ErrStrategyNotFound (and writes nothing) when the
	// license has no configuration row.
	AppendWithGoalUpdate(ctx context.Context, record models.HistoryRecord, maxGoal float64) (models.HistoryRecord, error)

	// StatsByKey aggregates the license's history by action kind.
	StatsByKey(ctx context.Context, licenseKey string) ([]models.ActionStats, error)
}
