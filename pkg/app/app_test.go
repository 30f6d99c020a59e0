package app_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/testdb"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

func newApp(t *testing.T, fns ...app.RouteFunc) http.Handler {
	t.Helper()
	config.Set("RATE_LIMIT", "0")

	a := app.New(testdb.New(t))
	for _, fn := range fns {
		a.Routes(fn)
	}
	t.Cleanup(a.Close)

	h, err := a.Handler()
	require.NoError(t, err)
	return h
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(newApp(t), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"data":{"status":"ok","database":"up"}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newApp(t)
	get(h, "/health")

	rec := get(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}

func TestTrailingSlashesAreStripped(t *testing.T) {
	h := newApp(t, func(r *router.Router) error {
		r.Get("/ping", "ping", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("pong"))
		})
		return nil
	})

	rec := get(h, "/ping/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestPanicsBecomeEnvelope500(t *testing.T) {
	h := newApp(t, func(r *router.Router) error {
		r.Get("/boom", "boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
		return nil
	})

	rec := get(h, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":500`)
}

func TestRouteFuncErrorStopsBuild(t *testing.T) {
	a := app.New(nil).Routes(func(*router.Router) error { return errors.New("schema broken") })
	defer a.Close()

	_, err := a.Handler()
	assert.EqualError(t, err, "schema broken")
}

func TestRouteList(t *testing.T) {
	a := app.New(nil)
	defer a.Close()

	var out bytes.Buffer
	require.NoError(t, a.RouteList(&out))
	assert.Contains(t, out.String(), "/health")
	assert.Contains(t, out.String(), "metrics")
}
