package controllers

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{service: services.NewAuthService(db)}
}

// Login exchanges admin credentials for a bearer token.
func (h *AuthController) Login(c *ctx.Context) {
	var in serializers.LoginInput
	if !c.BindJSON(&in) {
		return
	}

	token, expires, err := h.service.Login(c.Context(), *in.Username, *in.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		logger.WithCtx(c.Context()).Warn("admin login failed", "username", *in.Username, "ip", c.ClientIP())
		c.Error(http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	if err != nil {
		WriteError(c, err)
		return
	}

	c.Success(map[string]string{
		"token":      token,
		"expires_at": expires.UTC().Format(time.RFC3339),
	})
}
