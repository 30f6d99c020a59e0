package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
)

func TestHasRole(t *testing.T) {
	h := rbac.HasRole("staff", "superuser")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(claims *auth.Claims) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if claims != nil {
			req = req.WithContext(middleware.WithClaims(req.Context(), claims))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil))
	assert.Equal(t, http.StatusForbidden, serve(&auth.Claims{UserID: 1, Role: "customer"}))
	assert.Equal(t, http.StatusOK, serve(&auth.Claims{UserID: 1, Role: "staff"}))
	assert.Equal(t, http.StatusOK, serve(&auth.Claims{UserID: 1, Role: "superuser"}))
}
