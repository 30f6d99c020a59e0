package routes

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/schema"
	"github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// RegisterGraphQL mounts the read-only catalog query endpoint.
func RegisterGraphQL(r *router.Router, db *gorm.DB) error {
	catalog, err := schema.Catalog(db, r)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}
	r.Post("/graphql", "graphql", graphql.Handler(catalog))
	return nil
}
