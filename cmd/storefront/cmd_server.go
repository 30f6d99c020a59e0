package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/session"
)

func storefront(db *gorm.DB, messages session.Store) *app.Application {
	return app.New(db).Routes(func(r *router.Router) error {
		return routes.Register(r, db, messages)
	})
}

// storefront serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Boot(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cache.Connect(ctx); err != nil {
			logger.Warn("redis unavailable, admin messages kept in memory", "error", err)
		}
		defer cache.Close() //nolint:errcheck

		a := storefront(database.DB, session.NewStore(config.MessageTTL()))
		defer a.Close()
		return a.Serve(ctx)
	},
}

// storefront route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := storefront(nil, session.NewMemoryStore(time.Minute))
		defer a.Close()
		return a.RouteList(cmd.OutOrStdout())
	},
}
