package reqid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	var seen string
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromCtx(r.Context())
	}))

	t.Run("reuses inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(Header, "gateway-42")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "gateway-42", seen)
		assert.Equal(t, "gateway-42", rec.Header().Get(Header))
	})

	t.Run("replaces unsafe inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(Header, "bad id\nlevel=ERROR")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Len(t, seen, 32)
		assert.Equal(t, seen, rec.Header().Get(Header))
	})
}
