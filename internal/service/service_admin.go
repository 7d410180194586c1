package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"licensegate/internal/logger"
	"licensegate/internal/store"
	"licensegate/models"
)

// adminService is the concrete implementation of AdminService. Input
// validation happens here; duplicate and not-found conditions come back from
// the repositories as store sentinels and pass through wrapped, so handlers
// can match them with errors.Is.
type adminService struct {
	licenseRepository  store.LicenseRepository
	strategyRepository store.StrategyRepository
	historyRepository  store.HistoryRepository

	logger *logger.Logger
}

// NewAdminService constructs an AdminService on top of the given
// repositories.
func NewAdminService(licenses store.LicenseRepository, strategies store.StrategyRepository, history store.HistoryRepository, logger *logger.Logger) AdminService {
	return &adminService{
		licenseRepository:  licenses,
		strategyRepository: strategies,
		historyRepository:  history,
		logger:             logger,
	}
}

// CreateLicense registers a new license account. New licenses start active;
// an empty expires_at means the license never expires.
//
// Returns ErrInvalidDataProvided when username, full name, or license key is
// missing, ErrInvalidExpiryFormat when expires_at is present but not
// RFC 3339, and the store duplicate sentinels wrapped on conflicts.
func (a *adminService) CreateLicense(ctx context.Context, request models.AddLicenseRequest) (models.License, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.FullName == "" || request.LicenseKey == "" {
		log.Error().Str("username", request.Username).Msg("invalid license data provided")
		return models.License{}, ErrInvalidDataProvided
	}

	var expiresAt *time.Time
	if request.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, request.ExpiresAt)
		if err != nil {
			log.Error().Str("expires_at", request.ExpiresAt).Msg("unparseable expiration date")
			return models.License{}, ErrInvalidExpiryFormat
		}
		expiresAt = &parsed
	}

	license := models.License{
		Username:   request.Username,
		FullName:   request.FullName,
		LicenseKey: request.LicenseKey,
		HWID:       request.HWID,
		Active:     true,
		ExpiresAt:  expiresAt,
	}

	created, err := a.licenseRepository.CreateLicense(ctx, license)
	if err != nil {
		log.Err(err).Str("username", request.Username).
			Str("key", logger.KeyPrefix(request.LicenseKey)).
			Msg("license creation ended with error")
		return models.License{}, fmt.Errorf("license creation ended with error: %w", err)
	}

	log.Info().Str("username", created.Username).Int64("id", created.ID).Msg("license created")

	return created, nil
}

// SetStrategy replaces a license's strategy configuration wholesale. The
// payload is stored verbatim; an absent payload is stored as an empty
// object and a zero max_goal falls back to the default.
//
// Returns ErrInvalidDataProvided when the key is missing and a wrapped
// store.ErrNoLicenseFound when the license does not exist.
func (a *adminService) SetStrategy(ctx context.Context, request models.SetStrategyRequest) error {
	log := logger.FromContext(ctx)

	if request.LicenseKey == "" {
		log.Error().Msg("strategy replace requested without a license key")
		return ErrInvalidDataProvided
	}

	data := []byte("{}")
	if request.Strategy != nil {
		marshalled, err := json.Marshal(request.Strategy)
		if err != nil {
			log.Err(err).Str("key", logger.KeyPrefix(request.LicenseKey)).Msg("strategy payload does not marshal")
			return ErrInvalidDataProvided
		}
		data = marshalled
	}

	maxGoal := request.MaxGoal
	if maxGoal == 0 {
		maxGoal = models.DefaultMaxGoal
	}

	strategy := models.Strategy{
		LicenseKey: request.LicenseKey,
		Data:       data,
		MaxGoal:    maxGoal,
	}

	if err := a.strategyRepository.Upsert(ctx, strategy); err != nil {
		log.Err(err).Str("key", logger.KeyPrefix(request.LicenseKey)).Msg("strategy replace ended with error")
		return fmt.Errorf("strategy replace ended with error: %w", err)
	}

	log.Info().Str("key", logger.KeyPrefix(request.LicenseKey)).Float64("max_goal", maxGoal).Msg("strategy replaced")

	return nil
}

// ListLicenses returns every license account.
func (a *adminService) ListLicenses(ctx context.Context) ([]models.License, error) {
	log := logger.FromContext(ctx)

	licenses, err := a.licenseRepository.ListLicenses(ctx)
	if err != nil {
		log.Err(err).Msg("license listing ended with error")
		return nil, fmt.Errorf("license listing ended with error: %w", err)
	}

	return licenses, nil
}

// LicenseStats aggregates a license's history by action kind. The license
// must exist; a key with no history yields an empty aggregation.
//
// Returns ErrInvalidDataProvided for an empty key and a wrapped
// store.ErrNoLicenseFound for an unknown one.
func (a *adminService) LicenseStats(ctx context.Context, licenseKey string) ([]models.ActionStats, error) {
	log := logger.FromContext(ctx)

	if licenseKey == "" {
		log.Error().Msg("stats requested without a license key")
		return nil, ErrInvalidDataProvided
	}

	if _, err := a.licenseRepository.FindByKey(ctx, licenseKey); err != nil {
		log.Err(err).Str("key", logger.KeyPrefix(licenseKey)).Msg("license lookup failed")
		return nil, fmt.Errorf("license lookup failed: %w", err)
	}

	stats, err := a.historyRepository.StatsByKey(ctx, licenseKey)
	if err != nil {
		log.Err(err).Str("key", logger.KeyPrefix(licenseKey)).Msg("stats aggregation ended with error")
		return nil, fmt.Errorf("stats aggregation ended with error: %w", err)
	}

	return stats, nil
}

// DeleteLicense removes a license account; strategy and history rows follow
// by cascade.
//
// Returns ErrInvalidDataProvided for an empty key and a wrapped
// store.ErrNoLicenseFound for an unknown one.
func (a *adminService) DeleteLicense(ctx context.Context, licenseKey string) error {
	log := logger.FromContext(ctx)

	if licenseKey == "" {
		log.Error().Msg("deletion requested without a license key")
		return ErrInvalidDataProvided
	}

	if err := a.licenseRepository.DeleteByKey(ctx, licenseKey); err != nil {
		log.Err(err).Str("key", logger.KeyPrefix(licenseKey)).Msg("license deletion ended with error")
		return fmt.Errorf("license deletion ended with error: %w", err)
	}

	log.Info().Str("key", logger.KeyPrefix(licenseKey)).Msg("license deleted")

	return nil
}
