package middleware

import (
	"context"
	"net/http"
	"strings"

	"ai-interview-coach-backend/internal/service"
)

type contextKey string

const (
	UserUIDKey   contextKey = "userUid"
	UserEmailKey contextKey = "userEmail"
	UserNameKey  contextKey = "userName"
)

// AuthMiddleware verifies identity tokens on protected routes.
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireUser validates the bearer JWT from the Authorization header and
// puts the verified uid/email into the request context.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, UserUIDKey, claims.UID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, UserNameKey, claims.Name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserUID extracts the verified user id from context.
func GetUserUID(ctx context.Context) string {
	if v := ctx.Value(UserUIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetUserEmail extracts the verified user email from context.
func GetUserEmail(ctx context.Context) string {
	if v := ctx.Value(UserEmailKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetUserName extracts the optional display name from context.
func GetUserName(ctx context.Context) string {
	if v := ctx.Value(UserNameKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
