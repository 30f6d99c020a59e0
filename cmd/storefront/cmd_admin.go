package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/database"
)

var adminFlags struct {
	username  string
	password  string
	superuser bool
}

// storefront admin:create
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create an admin console user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Boot(); err != nil {
			return err
		}
		user, err := services.NewAuthService(database.DB).
			CreateAdmin(cmd.Context(), adminFlags.username, adminFlags.password, adminFlags.superuser)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %q (id %d)\n", user.Role, user.Username, user.ID)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminFlags.username, "username", "", "login name")
	adminCreateCmd.Flags().StringVar(&adminFlags.password, "password", "", "login password")
	adminCreateCmd.Flags().BoolVar(&adminFlags.superuser, "superuser", false, "grant the superuser role")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("password")
}
