package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/database"
)

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Boot(); err != nil {
			return err
		}
		return app.Migrate(database.DB, cmd.OutOrStdout())
	},
}

// storefront migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Boot(); err != nil {
			return err
		}
		return app.Rollback(database.DB, cmd.OutOrStdout())
	},
}

// storefront migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Boot(); err != nil {
			return err
		}
		return app.MigrateStatus(database.DB, cmd.OutOrStdout())
	},
}

// storefront db:seed
var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the demo catalog and customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Boot(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(database.DB, cmd.OutOrStdout())
	},
}
