package service

import (
	"context"

	"licensegate/models"
)

// AuthService verifies license credentials presented by clients.
type AuthService interface {
	// Verify runs the full authentication pipeline for a presented license
	// key and device fingerprint. On success it returns the license together
	// with its strategy configuration (a synthesized default when the
	// license has none stored).
	//
	// Every authentication failure is reported as ErrAuthenticationFailed
	// regardless of its cause; a locked-out key is reported as
	// ErrTooManyAttempts.
	Verify(ctx context.Context, licenseKey string, hwid string) (models.License, models.Strategy, error)
}

// ActionService records client-reported actions into the history ledger.
type ActionService interface {
	// Record validates and persists one reported action, applying the side
	// effects of the special action kinds (see models.ActionUpdateGoal and
	// friends) before the record is written.
	Record(ctx context.Context, action models.ActionSync) (models.HistoryRecord, error)
}

// AdminService exposes the operator-facing management operations.
type AdminService interface {
	// CreateLicense registers a new license account.
	CreateLicense(ctx context.Context, request models.AddLicenseRequest) (models.License, error)

	// SetStrategy replaces a license's strategy configuration wholesale.
	SetStrategy(ctx context.Context, request models.SetStrategyRequest) error

	// ListLicenses returns every license account.
	ListLicenses(ctx context.Context) ([]models.License, error)

	// LicenseStats aggregates a license's history by action kind.
	LicenseStats(ctx context.Context, licenseKey string) ([]models.ActionStats, error)

	// DeleteLicense removes a license account together with its strategy and
	// history rows.
	DeleteLicense(ctx context.Context, licenseKey string) error
}

// AppInfoService reports build and version information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
