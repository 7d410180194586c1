package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are absent from every source.
var (
	// ErrMissingAdminKey indicates that no operator secret was configured.
	// The admin surface must never come up unauthenticated.
	ErrMissingAdminKey = errors.New("admin key is not configured")

	// ErrMissingDatabaseDSN indicates that no database connection string was
	// configured.
	ErrMissingDatabaseDSN = errors.New("database DSN is not configured")
)
