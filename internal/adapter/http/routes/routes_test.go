package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"accountsapi/internal/adapter/database/repository"
	"accountsapi/internal/adapter/http/handler"
	"accountsapi/internal/core/service"
	"accountsapi/internal/core/telemetry"
	. "accountsapi/pkg/test"
)

func setupRouter(t *testing.T, registry *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)

	manager := InitTestDB(t)
	metrics := telemetry.NewAppMetrics(registry)
	svc := service.NewRegistrationService(repository.NewSQLUserRepository(manager, nil), nil, nil)

	return SetupRouter(HandlersConfig{
		RegistrationHandler: handler.NewRegistrationHandler(svc, metrics, nil),
		HealthHandler:       handler.NewHealthHandler(manager),
	}, metrics, otelzap.New(zap.NewNop()), "accountsapi-test")
}

func TestRouter_Register(t *testing.T) {
	RegisterTestingT(t)

	registry := prometheus.NewRegistry()
	router := setupRouter(t, registry)

	body := strings.NewReader(`{"nombre": "María", "email": "maria@example.com", "password": "12345678"}`)
	req, _ := http.NewRequest("POST", "/api/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusCreated))
	Expect(rr.Header().Get("X-Request-ID")).ToNot(BeEmpty())
	Expect(rr.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))

	count, err := testutil.GatherAndCount(registry, "http_requests_total")
	Expect(err).ToNot(HaveOccurred())
	Expect(count).To(Equal(1))
}

func TestRouter_KeepsCallerRequestID(t *testing.T) {
	RegisterTestingT(t)

	router := setupRouter(t, prometheus.NewRegistry())

	req, _ := http.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Header().Get("X-Request-ID")).To(Equal("abc-123"))
}

func TestRouter_Preflight(t *testing.T) {
	RegisterTestingT(t)

	router := setupRouter(t, prometheus.NewRegistry())

	req, _ := http.NewRequest("OPTIONS", "/api/auth/register", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusNoContent))
	Expect(rr.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("POST"))
}
