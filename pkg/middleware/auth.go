package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type claimsKey struct{}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the token's claims in the request context.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			logger.WithCtx(r.Context()).Debug("rejected bearer token", "error", err)
			response.Unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// WithClaims returns ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromCtx returns the claims Authenticate stored, if any.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok && c != nil
}

func UserIDFromCtx(r *http.Request) (uint, bool) {
	c, ok := ClaimsFromCtx(r.Context())
	if !ok {
		return 0, false
	}
	return c.UserID, true
}

func RoleFromCtx(r *http.Request) (string, bool) {
	c, ok := ClaimsFromCtx(r.Context())
	if !ok {
		return "", false
	}
	return c.Role, true
}
