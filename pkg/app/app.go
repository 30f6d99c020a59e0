// Package app assembles a storefront process: the HTTP handler with its
// global middleware, and the operations behind each CLI command.
//
//	a := app.New(database.DB).Routes(func(r *router.Router) error {
//	    return routes.Register(r, database.DB, messages)
//	})
//	defer a.Close()
//	return a.Serve(ctx)
package app

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// RouteFunc registers a group of routes.
type RouteFunc func(r *router.Router) error

// Application is built with New, given its routes, then served.
type Application struct {
	db       *gorm.DB
	routeFns []RouteFunc
	limiter  *middleware.Limiter
}

// New creates an Application over db, rate limited to config.RateLimit()
// requests per minute per client.
func New(db *gorm.DB) *Application {
	return &Application{
		db:      db,
		limiter: middleware.NewLimiter(config.RateLimit(), time.Minute),
	}
}

// Routes adds a route-registration callback. Callbacks run in order each
// time a router is built.
func (a *Application) Routes(fn RouteFunc) *Application {
	a.routeFns = append(a.routeFns, fn)
	return a
}

// Handler builds the router and returns it as the process's http.Handler.
func (a *Application) Handler() (http.Handler, error) {
	r, err := a.Router()
	if err != nil {
		return nil, err
	}
	return r.Handler(), nil
}

// Close stops the rate limiter's eviction loop.
func (a *Application) Close() {
	a.limiter.Stop()
}
