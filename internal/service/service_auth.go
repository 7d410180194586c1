package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"licensegate/internal/logger"
	"licensegate/internal/store"
	"licensegate/models"
)

// authService is the concrete implementation of AuthService. It runs the
// ordered verification pipeline against the license repository, throttled by
// the shared RateLimiter.
type authService struct {
	licenseRepository  store.LicenseRepository
	strategyRepository store.StrategyRepository

	limiter *RateLimiter

	// now is replaceable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService on top of the given repositories
// and failure counter.
//
// The returned service is safe for concurrent use.
func NewAuthService(licenses store.LicenseRepository, strategies store.StrategyRepository, limiter *RateLimiter, logger *logger.Logger) AuthService {
	return &authService{
		licenseRepository:  licenses,
		strategyRepository: strategies,
		limiter:            limiter,
		now:                time.Now,
		logger:             logger,
	}
}

// Verify runs the checks strictly in order, short-circuiting on the first
// failure: lockout, existence, active flag, expiration, device binding.
// Every failed check counts against the key's failure window; the caller
// only ever learns ErrAuthenticationFailed, never which check rejected.
//
// On success the key's failure counter is cleared and the stored strategy is
// returned; a license without a stored strategy gets the synthesized default.
func (s *authService) Verify(ctx context.Context, licenseKey string, hwid string) (models.License, models.Strategy, error) {
	log := logger.FromContext(ctx)

	// A missing key is a malformed request, not a failed attempt; it never
	// touches the failure counter.
	if licenseKey == "" {
		log.Error().Msg("verification attempt with empty license key")
		return models.License{}, models.Strategy{}, ErrInvalidDataProvided
	}

	if !s.limiter.Allow(licenseKey) {
		log.Warn().Str("key", logger.KeyPrefix(licenseKey)).Msg("license key is locked out")
		return models.License{}, models.Strategy{}, ErrTooManyAttempts
	}

	license, err := s.licenseRepository.FindByKey(ctx, licenseKey)
	if err != nil {
		if errors.Is(err, store.ErrNoLicenseFound) {
			s.limiter.RecordFailure(licenseKey)
			log.Warn().Str("key", logger.KeyPrefix(licenseKey)).Msg("unknown license key")
			return models.License{}, models.Strategy{}, ErrAuthenticationFailed
		}

		log.Err(err).Str("key", logger.KeyPrefix(licenseKey)).Msg("license lookup failed")
		return models.License{}, models.Strategy{}, fmt.Errorf("license lookup failed: %w", err)
	}

	if !license.Active {
		s.limiter.RecordFailure(licenseKey)
		log.Warn().Str("key", logger.KeyPrefix(licenseKey)).Msg("license is deactivated")
		return models.License{}, models.Strategy{}, ErrAuthenticationFailed
	}

	if license.Expired(s.now()) {
		s.limiter.RecordFailure(licenseKey)
		log.Warn().Str("key", logger.KeyPrefix(licenseKey)).Time("expires_at", *license.ExpiresAt).Msg("license is expired")
		return models.License{}, models.Strategy{}, ErrAuthenticationFailed
	}

	if license.HWID != "" && hwid != license.HWID {
		s.limiter.RecordFailure(licenseKey)
		log.Warn().Str("key", logger.KeyPrefix(licenseKey)).Msg("device fingerprint mismatch")
		return models.License{}, models.Strategy{}, ErrAuthenticationFailed
	}

	s.limiter.RecordSuccess(licenseKey)

	strategy, err := s.strategyRepository.FindByKey(ctx, licenseKey)
	if err != nil {
		if errors.Is(err, store.ErrStrategyNotFound) {
			return license, defaultStrategy(licenseKey), nil
		}

		log.Err(err).Str("key", logger.KeyPrefix(licenseKey)).Msg("strategy lookup failed")
		return models.License{}, models.Strategy{}, fmt.Errorf("strategy lookup failed: %w", err)
	}

	return license, strategy, nil
}

// defaultStrategy synthesizes the built-in progression handed to licenses
// without a stored configuration: eleven steps keyed "1" through "11", each
// doubling the previous amount starting at 100, always on the PLAYER side.
func defaultStrategy(licenseKey string) models.Strategy {
	steps := make(map[string]any, 11)

	amount := float64(100)
	for i := 1; i <= 11; i++ {
		steps[strconv.Itoa(i)] = map[string]any{
			"amount": amount,
			"side":   "PLAYER",
		}
		amount *= 2
	}

	data, err := json.Marshal(steps)
	if err != nil {
		// A map of numbers and strings always marshals.
		data = []byte("{}")
	}

	return models.Strategy{
		LicenseKey: licenseKey,
		Data:       data,
		MaxGoal:    models.DefaultMaxGoal,
	}
}
