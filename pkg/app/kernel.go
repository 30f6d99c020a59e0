package app

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Router builds a router with the global middleware stack, /health,
// /metrics and every registered route.
func (a *Application) Router() (*router.Router, error) {
	r := router.New()

	// Outermost first:
	//  1. StripSlashes - /products/ and /products are one route
	//  2. metrics      - total latency, labelled by route pattern
	//  3. request ID   - before anything logs
	//  4. Logger       - access log with request_id
	//  5. Recovery     - panics become a logged 500
	//  6. CORS
	//  7. rate limiter - reject abusers before any handler work
	r.Use(
		chimw.StripSlashes,
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.CORSOptionsFromConfig()),
		a.limiter.Middleware,
	)

	r.Get("/health", "health", a.health)
	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())

	for _, fn := range a.routeFns {
		if err := fn(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// health reports liveness and whether the database answers.
func (a *Application) health(w http.ResponseWriter, r *http.Request) {
	if a.db == nil {
		response.Success(w, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := database.Ping(ctx, a.db); err != nil {
		response.Write(w, http.StatusServiceUnavailable, response.Envelope{
			Status: http.StatusServiceUnavailable,
			Data:   map[string]string{"status": "degraded", "database": "down"},
		})
		return
	}
	response.Success(w, map[string]string{"status": "ok", "database": "up"})
}
