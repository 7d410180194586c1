// Package adapter provides the client-side transport for talking to the
// licensegate server from operator tooling.
//
// The primary abstraction is [AdminClient], which decouples the admin CLI
// from the wire protocol. The package ships an HTTP/REST implementation
// ([NewHTTPAdminClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"licensegate/models"
)

// AdminClient defines the operator-facing operations of the licensegate
// server. Implementations are responsible for serialisation, admin-secret
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type AdminClient interface {
	// AddUser registers a new license account.
	AddUser(ctx context.Context, request models.AddLicenseRequest) error

	// SetStrategy replaces a license's strategy configuration.
	SetStrategy(ctx context.Context, request models.SetStrategyRequest) error

	// ListUsers fetches every license account.
	ListUsers(ctx context.Context) ([]models.License, error)

	// UserStats fetches the per-action aggregation of one license's history.
	UserStats(ctx context.Context, licenseKey string) ([]models.ActionStats, error)

	// DeleteUser removes a license account with its strategy and history.
	DeleteUser(ctx context.Context, licenseKey string) error

	// Status probes the unauthenticated health endpoint.
	Status(ctx context.Context) (models.HealthResponse, error)
}
