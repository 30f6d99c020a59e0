package app

import (
	"context"

	"github.com/shashiranjanraj/storefront/internal/server"
)

// Serve builds the handler and runs the HTTP and gRPC servers until ctx
// is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}
	return server.Run(ctx, handler, a.db)
}
