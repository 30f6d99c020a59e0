package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
)

// AuthService logs admin users in and creates them.
type AuthService struct {
	users *repositories.AdminUserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewAdminUserRepository(db)}
}

// Login checks username and password and returns a bearer token with its
// expiry. Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("load admin user: %w", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return auth.GenerateToken(user.ID, user.Role)
}

// CreateAdmin stores a new admin user with a bcrypt-hashed password.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string, superuser bool) (models.AdminUser, error) {
	if username == "" || password == "" {
		return models.AdminUser{}, errors.New("username and password are required")
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return models.AdminUser{}, fmt.Errorf("admin user %q already exists", username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AdminUser{}, fmt.Errorf("load admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.AdminUser{Username: username, Password: hash, Role: models.RoleStaff}
	if superuser {
		user.Role = models.RoleSuperuser
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.AdminUser{}, fmt.Errorf("create admin user: %w", err)
	}
	return user, nil
}
