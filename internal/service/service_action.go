package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"licensegate/internal/logger"
	"licensegate/internal/store"
	"licensegate/models"
)

// actionService is the concrete implementation of ActionService. It checks
// that the reporting license exists, applies the side effects of the special
// action kinds, and appends the record to the ledger.
//
// Deliberately weaker than the verification pipeline: a deactivated or
// expired license may still report actions, so a session revoked mid-run
// keeps its ledger complete. Only unknown keys are rejected.
type actionService struct {
	licenseRepository store.LicenseRepository
	historyRepository store.HistoryRepository

	logger *logger.Logger
}

// NewActionService constructs an ActionService on top of the given
// repositories.
func NewActionService(licenses store.LicenseRepository, history store.HistoryRepository, logger *logger.Logger) ActionService {
	return &actionService{
		licenseRepository: licenses,
		historyRepository: history,
		logger:            logger,
	}
}

// Record persists one reported action.
//
// Special kinds rewrite the record before it is stored, but only when their
// optional value accompanies them; without it they append verbatim like any
// other action:
//   - UPDATE_GOAL with max_goal sets the strategy's goal and stores the
//     record with amount = the new goal, atomically with the goal change.
//   - UPDATE_START and RESET_CYCLE with start_balance overwrite both amount
//     and live_balance with it.
//
// Returns ErrInvalidDataProvided when key or action is missing,
// ErrAuthenticationFailed for an unknown key, ErrInvalidGoalValue /
// ErrInvalidStartBalance when a supplied value is not a number, and
// store.ErrStrategyNotFound when a goal update targets a license without a
// stored strategy.
func (s *actionService) Record(ctx context.Context, action models.ActionSync) (models.HistoryRecord, error) {
	log := logger.FromContext(ctx)

	if action.LicenseKey == "" || action.Action == "" {
		log.Error().Str("action", action.Action).Msg("invalid action data provided")
		return models.HistoryRecord{}, ErrInvalidDataProvided
	}

	if _, err := s.licenseRepository.FindByKey(ctx, action.LicenseKey); err != nil {
		if errors.Is(err, store.ErrNoLicenseFound) {
			log.Warn().Str("key", logger.KeyPrefix(action.LicenseKey)).Msg("action reported for unknown license key")
			return models.HistoryRecord{}, ErrAuthenticationFailed
		}

		log.Err(err).Str("key", logger.KeyPrefix(action.LicenseKey)).Msg("license lookup failed")
		return models.HistoryRecord{}, fmt.Errorf("license lookup failed: %w", err)
	}

	record := models.HistoryRecord{
		LicenseKey:  action.LicenseKey,
		Action:      action.Action,
		Amount:      action.Amount,
		LiveBalance: action.LiveBalance,
		Profit:      action.Profit,
	}

	switch {
	case action.Action == models.ActionUpdateGoal && action.MaxGoal != nil:
		goal, err := strconv.ParseFloat(*action.MaxGoal, 64)
		if err != nil {
			log.Error().Str("key", logger.KeyPrefix(action.LicenseKey)).Msg("goal update without a valid max_goal")
			return models.HistoryRecord{}, ErrInvalidGoalValue
		}

		record.Amount = goal

		stored, err := s.historyRepository.AppendWithGoalUpdate(ctx, record, goal)
		if err != nil {
			if errors.Is(err, store.ErrStrategyNotFound) {
				log.Warn().Str("key", logger.KeyPrefix(action.LicenseKey)).Msg("goal update for license without strategy")
				return models.HistoryRecord{}, err
			}

			log.Err(err).Str("key", logger.KeyPrefix(action.LicenseKey)).Msg("goal update failed")
			return models.HistoryRecord{}, fmt.Errorf("goal update failed: %w", err)
		}

		return stored, nil

	case (action.Action == models.ActionUpdateStart || action.Action == models.ActionResetCycle) && action.StartBalance != nil:
		start, err := strconv.ParseFloat(*action.StartBalance, 64)
		if err != nil {
			log.Error().Str("key", logger.KeyPrefix(action.LicenseKey)).Str("action", action.Action).
				Msg("cycle reset without a valid start_balance")
			return models.HistoryRecord{}, ErrInvalidStartBalance
		}

		record.Amount = start
		record.LiveBalance = start
	}

	stored, err := s.historyRepository.Append(ctx, record)
	if err != nil {
		log.Err(err).Str("key", logger.KeyPrefix(action.LicenseKey)).Str("action", action.Action).
			Msg("history append failed")
		return models.HistoryRecord{}, fmt.Errorf("history append failed: %w", err)
	}

	return stored, nil
}
