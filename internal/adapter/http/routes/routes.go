package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"accountsapi/internal/adapter/http/handler"
	"accountsapi/internal/adapter/http/middleware"
	"accountsapi/internal/core/telemetry"
)

type HandlersConfig struct {
	RegistrationHandler *handler.RegistrationHandler
	HealthHandler       *handler.HealthHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *otelzap.Logger, serviceName string) *gin.Engine {
	router := gin.New()

	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(logger, serviceName))
	router.Use(middleware.Metrics(metrics))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	if handlers.HealthHandler != nil {
		router.GET("/healthz", handlers.HealthHandler.Check)
	}

	if handlers.RegistrationHandler != nil {
		setupAuthRoutes(router, handlers.RegistrationHandler)
	}

	return router
}

func setupAuthRoutes(router *gin.Engine, registrationHandler *handler.RegistrationHandler) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", registrationHandler.Register)
	}
}
