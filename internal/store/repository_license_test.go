package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"licensegate/internal/logger"
	"licensegate/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var licenseColumns = []string{"id", "username", "full_name", "license_key", "hwid", "active", "created_at", "expires_at"}

// ─────────────────────────────────────────────
// CreateLicense
// ─────────────────────────────────────────────

func TestCreateLicense_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	createdAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(createLicense).
		WithArgs("alice", "Alice Example", "KEY-ALICE", "DEVICE-A", nil).
		WillReturnRows(sqlmock.NewRows(licenseColumns).
			AddRow(int64(1), "alice", "Alice Example", "KEY-ALICE", "DEVICE-A", true, createdAt, nil))

	created, err := repo.CreateLicense(context.Background(), models.License{
		Username:   "alice",
		FullName:   "Alice Example",
		LicenseKey: "KEY-ALICE",
		HWID:       "DEVICE-A",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.Active)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.Nil(t, created.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLicense_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	mock.ExpectQuery(createLicense).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "licenses_username_key"})

	_, err := repo.CreateLicense(context.Background(), models.License{Username: "alice", LicenseKey: "KEY-NEW"})

	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestCreateLicense_DuplicateLicenseKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	mock.ExpectQuery(createLicense).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "licenses_license_key_key"})

	_, err := repo.CreateLicense(context.Background(), models.License{Username: "alice2", LicenseKey: "KEY-ALICE"})

	assert.ErrorIs(t, err, ErrLicenseKeyExists)
}

func TestCreateLicense_UnexpectedError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	driverErr := errors.New("connection reset")
	mock.ExpectQuery(createLicense).WillReturnError(driverErr)

	_, err := repo.CreateLicense(context.Background(), models.License{Username: "alice", LicenseKey: "KEY"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsernameExists)
	assert.ErrorIs(t, err, driverErr)
}

// ─────────────────────────────────────────────
// FindByKey
// ─────────────────────────────────────────────

func TestFindLicenseByKey_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	expiresAt := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(findLicenseByKey).
		WithArgs("KEY-ALICE").
		WillReturnRows(sqlmock.NewRows(licenseColumns).
			AddRow(int64(1), "alice", "Alice Example", "KEY-ALICE", "", true, time.Now(), expiresAt))

	found, err := repo.FindByKey(context.Background(), "KEY-ALICE")

	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	require.NotNil(t, found.ExpiresAt)
	assert.Equal(t, expiresAt, *found.ExpiresAt)
}

func TestFindLicenseByKey_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	mock.ExpectQuery(findLicenseByKey).
		WithArgs("KEY-GHOST").
		WillReturnRows(sqlmock.NewRows(licenseColumns))

	_, err := repo.FindByKey(context.Background(), "KEY-GHOST")

	assert.ErrorIs(t, err, ErrNoLicenseFound)
}

// ─────────────────────────────────────────────
// ListLicenses
// ─────────────────────────────────────────────

func TestListLicenses_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	query, _, err := buildListLicensesQuery()
	require.NoError(t, err)

	mock.ExpectQuery(query).
		WillReturnRows(sqlmock.NewRows(licenseColumns).
			AddRow(int64(1), "alice", "Alice Example", "KEY-ALICE", "", true, time.Now(), nil).
			AddRow(int64(2), "bob", "Bob Example", "KEY-BOB", "DEVICE-B", false, time.Now(), nil))

	licenses, err := repo.ListLicenses(context.Background())

	require.NoError(t, err)
	require.Len(t, licenses, 2)
	assert.Equal(t, "alice", licenses[0].Username)
	assert.False(t, licenses[1].Active)
}

func TestListLicenses_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	query, _, err := buildListLicensesQuery()
	require.NoError(t, err)

	mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(licenseColumns))

	licenses, err := repo.ListLicenses(context.Background())

	require.NoError(t, err)
	assert.Empty(t, licenses)
}

func TestListLicenses_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	query, _, err := buildListLicensesQuery()
	require.NoError(t, err)

	mock.ExpectQuery(query).WillReturnError(errors.New("connection reset"))

	_, err = repo.ListLicenses(context.Background())

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ─────────────────────────────────────────────
// DeleteByKey
// ─────────────────────────────────────────────

func TestDeleteLicenseByKey_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	mock.ExpectExec(deleteLicenseByKey).
		WithArgs("KEY-ALICE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteByKey(context.Background(), "KEY-ALICE")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLicenseByKey_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLicenseRepository(db, logger.Nop())

	mock.ExpectExec(deleteLicenseByKey).
		WithArgs("KEY-GHOST").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByKey(context.Background(), "KEY-GHOST")

	assert.ErrorIs(t, err, ErrNoLicenseFound)
}
