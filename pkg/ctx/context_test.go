package ctx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/shashiranjanraj/storefront/pkg/ctx"
)

func TestParamID(t *testing.T) {
	r := chi.NewRouter()
	var got uint
	var ok bool
	r.Get("/products/{id}", appctx.Wrap(func(c *appctx.Context) {
		got, ok = c.ParamID("id")
		c.NoContent()
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/12", nil))
	assert.True(t, ok)
	assert.Equal(t, uint(12), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/abc", nil))
	assert.False(t, ok)
}

func TestBindJSONValidationFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":""}`))

	appctx.Wrap(func(c *appctx.Context) {
		var in struct {
			Title *string `json:"title" validate:"required"`
		}
		assert.False(t, c.BindJSON(&in))
	})(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"title": []any{"The title field is required."}}, body["errors"])
}

func TestBindJSONMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))

	appctx.Wrap(func(c *appctx.Context) {
		var in struct{}
		assert.False(t, c.BindJSON(&in))
	})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientIPAndBaseURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://shop.test/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	req.Header.Set("X-Forwarded-Proto", "https")

	appctx.Wrap(func(c *appctx.Context) {
		assert.Equal(t, "1.2.3.4", c.ClientIP())
		assert.Equal(t, "https://shop.test", c.BaseURL())
	})(httptest.NewRecorder(), req)
}
