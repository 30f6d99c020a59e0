// Package ctx wraps a request/response pair behind one value so handlers
// read like:
//
//	func (h *ProductController) Show(c *ctx.Context) {
//	    id, ok := c.ParamID("id")
//	    ...
//	    c.Success(data)
//	}
//
//	r.Get("/products/{id}", "products.show", ctx.Wrap(h.Show))
package ctx

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return new(Context) },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamID parses a positive integer path parameter.
func (c *Context) ParamID(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// QueryInt returns an integer query parameter or def.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

func (c *Context) Context() context.Context { return c.R.Context() }

// ClientIP returns the first X-Forwarded-For hop, X-Real-Ip, or the peer address.
func (c *Context) ClientIP() string {
	if fwd := c.R.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if real := c.R.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(c.R.RemoteAddr)
	if err != nil {
		return c.R.RemoteAddr
	}
	return host
}

// BaseURL is the scheme and host that absolute links are built from:
// APP_URL when configured, otherwise the request's own origin.
func (c *Context) BaseURL() string {
	if u := config.AppURL(); u != "" {
		return u
	}
	scheme := "http"
	if c.R.TLS != nil || strings.EqualFold(c.R.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.R.Host
}

// BindJSON decodes the body into dest and validates it. On failure it has
// already answered 400 or 422 and returns false.
//
//	var in serializers.ProductInput
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

func (c *Context) Success(data any) { response.Success(c.W, data) }

func (c *Context) Created(data any) { response.Created(c.W, data) }

func (c *Context) NoContent() { response.NoContent(c.W) }

func (c *Context) Error(code int, message string) { response.Error(c.W, code, message) }

func (c *Context) ValidationError(errs validate.Errors) { response.ValidationError(c.W, errs) }

func (c *Context) NotFound() { response.NotFound(c.W) }

func (c *Context) Conflict(message string) { response.Conflict(c.W, message) }

func (c *Context) InternalError() { response.InternalError(c.W) }

func (c *Context) Unauthorized() { response.Unauthorized(c.W) }

// Redirect answers with code and a Location header.
func (c *Context) Redirect(code int, url string) {
	http.Redirect(c.W, c.R, url, code)
}
