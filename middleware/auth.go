package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront/models"
	"storefront/response"
	"storefront/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// Authorizer resolves a bearer token to its claims.
type Authorizer interface {
	Authorize(token string) (*utils.Claims, error)
}

// AuthMiddleware verifies JWT tokens and attaches the claims to the context
func AuthMiddleware(auth Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "Authorization header missing")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Error(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := auth.Authorize(strings.TrimSpace(parts[1]))
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware ensures that the user has admin privileges
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.Role != models.RoleAdmin {
			response.Error(w, http.StatusForbidden, "Forbidden: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFrom returns the token claims set by AuthMiddleware.
func ClaimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.Claims)
	return claims, ok
}
