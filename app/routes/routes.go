// Package routes mounts the storefront's HTTP surfaces on a router.
package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/session"
)

// Register mounts every surface: the REST API, GraphQL and the admin
// console.
func Register(r *router.Router, db *gorm.DB, messages session.Store) error {
	RegisterAPI(r, db)
	if err := RegisterGraphQL(r, db); err != nil {
		return err
	}
	RegisterAdmin(r, db, messages)
	return nil
}
