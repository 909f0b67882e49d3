package http

import (
	"go.uber.org/zap"

	"accountsapi/internal/adapter/http/handler"
	"accountsapi/internal/core/port"
	"accountsapi/internal/core/service"
	"accountsapi/internal/core/telemetry"
)

type Container struct {
	UserRepo port.UserRepository

	RegistrationService port.RegistrationService

	RegistrationHandler *handler.RegistrationHandler
	HealthHandler       *handler.HealthHandler
}

func NewContainer(userRepo port.UserRepository, pinger port.Pinger, probe port.Telemetry, metrics *telemetry.AppMetrics, logger *zap.Logger) *Container {
	registrationSvc := service.NewRegistrationService(userRepo, probe, logger)

	return &Container{
		UserRepo: userRepo,

		RegistrationService: registrationSvc,
		RegistrationHandler: handler.NewRegistrationHandler(registrationSvc, metrics, logger),

		HealthHandler: handler.NewHealthHandler(pinger),
	}
}
