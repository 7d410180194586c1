package service

import (
	"licensegate/internal/config"
	"licensegate/internal/logger"
	"licensegate/internal/store"
)

// Services bundles every service behind one constructor so the transport
// layer wires a single value.
type Services struct {
	AuthService    AuthService
	ActionService  ActionService
	AdminService   AdminService
	AppInfoService AppInfoService
}

// NewServices wires the services on top of the given repositories. The
// verification and administration services share nothing but the
// repositories; the rate limiter belongs to verification alone.
func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	limiter := NewRateLimiter(cfg.App.RateLimit)

	return &Services{
		AuthService:    NewAuthService(storages.LicenseRepository, storages.StrategyRepository, limiter, logger),
		ActionService:  NewActionService(storages.LicenseRepository, storages.HistoryRepository, logger),
		AdminService:   NewAdminService(storages.LicenseRepository, storages.StrategyRepository, storages.HistoryRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
