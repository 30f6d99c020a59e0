package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/admin"
	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/session"
)

// RegisterAdmin mounts the login endpoint and, behind a staff token, the
// admin console.
func RegisterAdmin(r *router.Router, db *gorm.DB, messages session.Store) {
	authController := controllers.NewAuthController(db)
	r.Post("/admin/login", "admin.login", ctx.Wrap(authController.Login))

	console := r.Group("/admin", middleware.Authenticate, rbac.HasRole(models.RoleStaff, models.RoleSuperuser))
	admin.NewSite(db, r, messages).Register(console)
}
