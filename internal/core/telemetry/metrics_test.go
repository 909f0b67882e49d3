package telemetry

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAppMetrics_PoolEvents(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())

	metrics.PoolCreated("mysql")
	metrics.PoolCreated("mysql")
	metrics.PoolDiscarded("mysql", errors.New("invalid connection"))

	Expect(testutil.ToFloat64(metrics.poolEvents.WithLabelValues("mysql", "created"))).To(Equal(2.0))
	Expect(testutil.ToFloat64(metrics.poolEvents.WithLabelValues("mysql", "discarded"))).To(Equal(1.0))
}

func TestAppMetrics_Registrations(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())

	metrics.RecordRegistration(context.Background(), "created")
	metrics.RecordRegistration(context.Background(), "conflict")
	metrics.RecordRegistration(context.Background(), "created")

	Expect(testutil.ToFloat64(metrics.registrations.WithLabelValues("created"))).To(Equal(2.0))
	Expect(testutil.ToFloat64(metrics.registrations.WithLabelValues("conflict"))).To(Equal(1.0))
}

func TestAppMetrics_NilIsSafe(t *testing.T) {
	RegisterTestingT(t)

	var metrics *AppMetrics

	Expect(func() {
		metrics.RecordRegistration(context.Background(), "created")
		metrics.PoolCreated("sqlite")
		metrics.RecordRequest(context.Background(), "POST", "/api/auth/register", "201", 0)
		metrics.StartSystemMetrics(context.Background())
	}).ToNot(Panic())
}
