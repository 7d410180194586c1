package service

import (
	"context"

	"licensegate/models"
)

// ─────────────────────────────────────────────
// Mock: store.LicenseRepository
// ─────────────────────────────────────────────

type mockLicenseRepository struct {
	createFn func(ctx context.Context, license models.License) (models.License, error)
	findFn   func(ctx context.Context, licenseKey string) (models.License, error)
	listFn   func(ctx context.Context) ([]models.License, error)
	deleteFn func(ctx context.Context, licenseKey string) error
}

func (m *mockLicenseRepository) CreateLicense(ctx context.Context, license models.License) (models.License, error) {
	if m.createFn != nil {
		return m.createFn(ctx, license)
	}
	return license, nil
}

func (m *mockLicenseRepository) FindByKey(ctx context.Context, licenseKey string) (models.License, error) {
	if m.findFn != nil {
		return m.findFn(ctx, licenseKey)
	}
	return models.License{}, nil
}

func (m *mockLicenseRepository) ListLicenses(ctx context.Context) ([]models.License, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockLicenseRepository) DeleteByKey(ctx context.Context, licenseKey string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, licenseKey)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.StrategyRepository
// ─────────────────────────────────────────────

type mockStrategyRepository struct {
	findFn   func(ctx context.Context, licenseKey string) (models.Strategy, error)
	upsertFn func(ctx context.Context, strategy models.Strategy) error
}

func (m *mockStrategyRepository) FindByKey(ctx context.Context, licenseKey string) (models.Strategy, error) {
	if m.findFn != nil {
		return m.findFn(ctx, licenseKey)
	}
	return models.Strategy{}, nil
}

func (m *mockStrategyRepository) Upsert(ctx context.Context, strategy models.Strategy) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, strategy)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.HistoryRepository
// ─────────────────────────────────────────────

type mockHistoryRepository struct {
	appendFn         func(ctx context.Context, record models.HistoryRecord) (models.HistoryRecord, error)
	appendWithGoalFn func(ctx context.Context, record models.HistoryRecord, maxGoal float64) (models.HistoryRecord, error)
	statsFn          func(ctx context.Context, licenseKey string) ([]models.ActionStats, error)
}

func (m *mockHistoryRepository) Append(ctx context.Context, record models.HistoryRecord) (models.HistoryRecord, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, record)
	}
	return record, nil
}

func (m *mockHistoryRepository) AppendWithGoalUpdate(ctx context.Context, record models.HistoryRecord, maxGoal float64) (models.HistoryRecord, error) {
	if m.appendWithGoalFn != nil {
		return m.appendWithGoalFn(ctx, record, maxGoal)
	}
	return record, nil
}

func (m *mockHistoryRepository) StatsByKey(ctx context.Context, licenseKey string) ([]models.ActionStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, licenseKey)
	}
	return nil, nil
}
