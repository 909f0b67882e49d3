package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func TestNewContainer_ServesMetrics(t *testing.T) {
	RegisterTestingT(t)

	container, err := NewContainer(context.Background(), Config{
		ServiceName:    "accountsapi",
		ServiceVersion: "test",
		Environment:    "test",
		MetricsPort:    "0",
	}, zap.NewNop())

	Expect(err).ToNot(HaveOccurred())
	defer container.Shutdown(context.Background())

	container.AppMetrics.RecordRegistration(context.Background(), "created")
	container.AppMetrics.PoolCreated("sqlite")

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	container.MetricsServer.Handler.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Body.String()).To(ContainSubstring(`registrations_total{outcome="created"} 1`))
	Expect(rr.Body.String()).To(ContainSubstring("go_goroutines"))
	Expect(container.NewTelemetryProbe(zap.NewNop())).ToNot(BeNil())
}
