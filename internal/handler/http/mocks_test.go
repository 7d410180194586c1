package http

import (
	"context"

	"licensegate/internal/config"
	"licensegate/internal/logger"
	"licensegate/internal/service"
	"licensegate/models"
)

const testAdminKey = "test-admin-secret"

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	verifyFn func(ctx context.Context, licenseKey string, hwid string) (models.License, models.Strategy, error)
}

func (m *mockAuthService) Verify(ctx context.Context, licenseKey string, hwid string) (models.License, models.Strategy, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, licenseKey, hwid)
	}
	return models.License{}, models.Strategy{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.ActionService
// ─────────────────────────────────────────────

type mockActionService struct {
	recordFn func(ctx context.Context, action models.ActionSync) (models.HistoryRecord, error)
}

func (m *mockActionService) Record(ctx context.Context, action models.ActionSync) (models.HistoryRecord, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, action)
	}
	return models.HistoryRecord{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AdminService
// ─────────────────────────────────────────────

type mockAdminService struct {
	createFn func(ctx context.Context, request models.AddLicenseRequest) (models.License, error)
	setFn    func(ctx context.Context, request models.SetStrategyRequest) error
	listFn   func(ctx context.Context) ([]models.License, error)
	statsFn  func(ctx context.Context, licenseKey string) ([]models.ActionStats, error)
	deleteFn func(ctx context.Context, licenseKey string) error
}

func (m *mockAdminService) CreateLicense(ctx context.Context, request models.AddLicenseRequest) (models.License, error) {
	if m.createFn != nil {
		return m.createFn(ctx, request)
	}
	return models.License{}, nil
}

func (m *mockAdminService) SetStrategy(ctx context.Context, request models.SetStrategyRequest) error {
	if m.setFn != nil {
		return m.setFn(ctx, request)
	}
	return nil
}

func (m *mockAdminService) ListLicenses(ctx context.Context) ([]models.License, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAdminService) LicenseStats(ctx context.Context, licenseKey string) ([]models.ActionStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, licenseKey)
	}
	return nil, nil
}

func (m *mockAdminService) DeleteLicense(ctx context.Context, licenseKey string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, licenseKey)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(ctx context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

type testServices struct {
	auth    *mockAuthService
	action  *mockActionService
	admin   *mockAdminService
	appInfo *mockAppInfoService
}

func newTestHandler(svcs testServices) *Handler {
	if svcs.auth == nil {
		svcs.auth = &mockAuthService{}
	}
	if svcs.action == nil {
		svcs.action = &mockActionService{}
	}
	if svcs.admin == nil {
		svcs.admin = &mockAdminService{}
	}
	if svcs.appInfo == nil {
		svcs.appInfo = &mockAppInfoService{version: "1.0.0"}
	}

	services := &service.Services{
		AuthService:    svcs.auth,
		ActionService:  svcs.action,
		AdminService:   svcs.admin,
		AppInfoService: svcs.appInfo,
	}

	return NewHandler(services, config.App{AdminKey: testAdminKey}, logger.Nop())
}
