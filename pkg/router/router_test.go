package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/router"
)

type stubController struct{}

func reply(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(action + ":" + chi.URLParam(r, "id")))
	}
}

func (stubController) Index(w http.ResponseWriter, r *http.Request)         { reply("index")(w, r) }
func (stubController) Store(w http.ResponseWriter, r *http.Request)         { reply("store")(w, r) }
func (stubController) Show(w http.ResponseWriter, r *http.Request)          { reply("show")(w, r) }
func (stubController) Update(w http.ResponseWriter, r *http.Request)        { reply("update")(w, r) }
func (stubController) PartialUpdate(w http.ResponseWriter, r *http.Request) { reply("partial")(w, r) }
func (stubController) Destroy(w http.ResponseWriter, r *http.Request)       { reply("destroy")(w, r) }

func TestResourceRoutes(t *testing.T) {
	r := router.New()
	r.Resource("/products", "products", stubController{})

	cases := map[string]string{
		"GET /products":      "index:",
		"POST /products":     "store:",
		"GET /products/3":    "show:3",
		"PUT /products/3":    "update:3",
		"PATCH /products/3":  "partial:3",
		"DELETE /products/3": "destroy:3",
	}
	for route, want := range cases {
		method, path, _ := strings.Cut(route, " ")
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		assert.Equal(t, want, rec.Body.String(), route)
	}

	assert.Len(t, r.Routes(), 6)
	assert.Equal(t, router.RouteInfo{Method: "GET", Path: "/products", Name: "products.index"}, r.Routes()[0])
}

func TestURLAndResolve(t *testing.T) {
	r := router.New()
	api := r.Group("/admin")
	api.Get("/collections/{id}", "admin.collections.show", reply("show"))

	url, err := r.URL("admin.collections.show", map[string]string{"id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/collections/9", url)

	params, ok := r.Resolve("admin.collections.show", "/admin/collections/9/")
	require.True(t, ok)
	assert.Equal(t, "9", params["id"])

	_, ok = r.Resolve("admin.collections.show", "/admin/products/9")
	assert.False(t, ok)

	_, err = r.URL("admin.collections.show", nil)
	assert.Error(t, err)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/a", mw("outer")).Group("/b", mw("inner"))
	g.Get("/c", "", reply("c"), mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/a/b/c", nil))
	assert.Equal(t, []string{"outer", "inner", "route"}, order)
}

func TestUnmatchedRequestsAnswerWithEnvelope(t *testing.T) {
	r := router.New()
	r.Get("/products", "products.index", reply("index"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"message":"Not found."}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"status":405,"message":"Method \"DELETE\" not allowed."}`, rec.Body.String())
}
