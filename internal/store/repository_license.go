package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"licensegate/internal/logger"
	"licensegate/models"

	"github.com/jackc/pgerrcode"
)

// licenseRepository is the PostgreSQL-backed implementation of
// [LicenseRepository]. It handles license account creation, lookup, listing,
// and deletion against the "licenses" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type licenseRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLicenseRepository constructs a [LicenseRepository] backed by the
// provided database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewLicenseRepository(db *DB, logger *logger.Logger) LicenseRepository {
	logger.Debug().Msg("creating license repository")
	return &licenseRepository{
		db:     db,
		logger: logger,
	}
}

// CreateLicense persists a new license record and returns the fully populated
// [models.License] with server-assigned fields (ID, Active, CreatedAt).
//
// The INSERT uses the [createLicense] prepared query which returns all
// columns via a RETURNING clause, so the caller receives the canonical
// database representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameExists] or
//     [ErrLicenseKeyExists], depending on the violated constraint.
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *licenseRepository) CreateLicense(ctx context.Context, license models.License) (models.License, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createLicense,
		license.Username, license.FullName, license.LicenseKey, license.HWID, license.ExpiresAt)

	var created models.License
	if err := row.Scan(&created.ID, &created.Username, &created.FullName, &created.LicenseKey,
		&created.HWID, &created.Active, &created.CreatedAt, &created.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*licenseRepository.CreateLicense").
			Str("username", license.Username).
			Msg("error: license was not created")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.License{}, duplicateLicenseError(err)
		default:
			return models.License{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindByKey retrieves the license record whose key matches licenseKey.
//
// Error handling:
//   - sql.ErrNoRows → [ErrNoLicenseFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *licenseRepository) FindByKey(ctx context.Context, licenseKey string) (models.License, error) {
	log := logger.FromContext(ctx)

	var found models.License
	row := r.db.QueryRowContext(ctx, findLicenseByKey, licenseKey)

	if err := row.Scan(&found.ID, &found.Username, &found.FullName, &found.LicenseKey,
		&found.HWID, &found.Active, &found.CreatedAt, &found.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.License{}, ErrNoLicenseFound
		}

		log.Err(err).Str("func", "*licenseRepository.FindByKey").
			Str("key", logger.KeyPrefix(licenseKey)).
			Msg("error: license lookup failed")
		return models.License{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListLicenses returns every license account ordered by ID.
//
// The listing query is built with squirrel so that operator-side filters can
// be attached without rewriting the SQL by hand.
func (r *licenseRepository) ListLicenses(ctx context.Context) ([]models.License, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListLicensesQuery()
	if err != nil {
		log.Err(err).Str("func", "*licenseRepository.ListLicenses").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*licenseRepository.ListLicenses").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	licenses := make([]models.License, 0, 16)
	for rows.Next() {
		var l models.License
		if scanErr := rows.Scan(&l.ID, &l.Username, &l.FullName, &l.LicenseKey,
			&l.HWID, &l.Active, &l.CreatedAt, &l.ExpiresAt); scanErr != nil {
			log.Err(scanErr).Str("func", "*licenseRepository.ListLicenses").Msg("failed to scan license row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		licenses = append(licenses, l)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*licenseRepository.ListLicenses").Msg("row iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return licenses, nil
}

// DeleteByKey removes the license record whose key matches licenseKey.
// Strategy and history rows are removed by the ON DELETE CASCADE constraints.
//
// Returns [ErrNoLicenseFound] when no row was affected.
func (r *licenseRepository) DeleteByKey(ctx context.Context, licenseKey string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteLicenseByKey, licenseKey)
	if err != nil {
		log.Err(err).Str("func", "*licenseRepository.DeleteByKey").
			Str("key", logger.KeyPrefix(licenseKey)).
			Msg("error: license deletion failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoLicenseFound
	}

	return nil
}

// duplicateLicenseError maps a unique_violation to the sentinel matching the
// violated constraint. The licenses table carries two unique indexes; the
// constraint name tells them apart.
func duplicateLicenseError(err error) error {
	if strings.Contains(postgresConstraint(err), "username") {
		return ErrUsernameExists
	}

	return ErrLicenseKeyExists
}
