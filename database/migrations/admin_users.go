package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

func init() {
	migration.Register("20260101000007_create_admin_users_table", &CreateAdminUsersTable{})
}

type CreateAdminUsersTable struct{}

func (m *CreateAdminUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.AdminUser{})
}

func (m *CreateAdminUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("admin_users")
}
