package controllers

import (
	"errors"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// WriteError answers with the status a service error maps to: 422 for
// field errors, 404 for missing rows, 409 for protected deletes and 500
// for everything else. Only the 500 case is logged.
func WriteError(c *ctx.Context, err error) {
	var verr *services.ValidationError
	var perr *services.ProtectedError
	switch {
	case errors.As(err, &verr):
		c.ValidationError(verr.Errors)
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.As(err, &perr):
		c.Conflict(perr.Error())
	default:
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method, "path", c.R.URL.Path, "error", err)
		c.InternalError()
	}
}
