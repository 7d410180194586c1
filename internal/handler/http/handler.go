package http

import (
	"licensegate/internal/config"
	"licensegate/internal/logger"
	"licensegate/internal/service"
)

type Handler struct {
	services *service.Services

	// adminKey is the static operator secret checked by withAdminAuth.
	adminKey string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		adminKey: cfg.AdminKey,
		logger:   logger,
	}
}
