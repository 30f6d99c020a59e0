package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := value(t, metrics.RequestTotal.WithLabelValues("GET", "/products/{id}", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/7", nil))
	after := value(t, metrics.RequestTotal.WithLabelValues("GET", "/products/{id}", "418"))

	assert.Equal(t, before+1, after)
}

func TestRecordAdminAction(t *testing.T) {
	before := value(t, metrics.AdminActionRows.WithLabelValues("products", "clear_inventory"))
	metrics.RecordAdminAction("products", "clear_inventory", 3)
	metrics.RecordAdminAction("products", "clear_inventory", 0)

	assert.Equal(t, before+3, value(t, metrics.AdminActionRows.WithLabelValues("products", "clear_inventory")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_in_flight")
}

func value(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
