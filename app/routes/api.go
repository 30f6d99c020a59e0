package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// RegisterAPI mounts the public catalog API: the root listing and the
// products and collections resources.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	root := controllers.NewRootController(r)
	r.Get("/", "api.root", ctx.Wrap(root.Index))

	r.Resource("/products", "products", controllers.NewProductController(db, r))
	r.Resource("/collections", "collections", controllers.NewCollectionController(db, r))
}
