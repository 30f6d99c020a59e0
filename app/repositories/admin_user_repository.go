package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

// AdminUserRepository adds username lookup to the generic repository.
type AdminUserRepository struct {
	*Repository[models.AdminUser]
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{Repository: New[models.AdminUser](db), db: db}
}

// FindByUsername looks up an admin user; gorm.ErrRecordNotFound when absent.
func (r *AdminUserRepository) FindByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, err
}
