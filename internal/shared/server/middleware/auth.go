package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-api/internal/shared/auth"
	"resume-api/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userRoleKey  = "userRole"
)

// methodsByRole maps a role to the set of verbs it may use. A nil set
// means every verb is allowed. New roles slot in here without touching
// the gate's control flow.
var methodsByRole = map[auth.Role]map[string]struct{}{
	auth.RoleOwner: nil,
	auth.RoleGuest: {
		http.MethodGet:     {},
		http.MethodHead:    {},
		http.MethodOptions: {},
	},
}

func roleAllows(role auth.Role, method string) bool {
	allowed, ok := methodsByRole[role]
	if !ok {
		return false
	}
	if allowed == nil {
		return true
	}
	_, ok = allowed[method]
	return ok
}

// isExempt reports whether the request bypasses authentication.
// Token issuance is the only business route outside the gate.
func isExempt(method, path string) bool {
	if method == http.MethodPost && path == "/auth" {
		return true
	}
	if method == http.MethodGet && (path == "/health" || path == "/metrics") {
		return true
	}
	return false
}

// Auth validates bearer tokens, binds identity to the request context and
// enforces the per-role verb policy.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if isExempt(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing Authorization header", nil)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "Token has expired", nil)
				return
			}
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid token", nil)
			return
		}

		role := auth.ParseRole(claims.Role)
		c.Set(userIDKey, claims.Sub)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		c.Set(userRoleKey, string(role))

		if !roleAllows(role, c.Request.Method) {
			respond.Error(c, http.StatusForbidden, "forbidden", "Guest users can only perform read requests", nil)
			return
		}

		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UserRoleFromContext fetches the role set by the auth middleware.
func UserRoleFromContext(c *gin.Context) auth.Role {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userRoleKey)
	if role, ok := val.(string); ok {
		return auth.Role(role)
	}
	return ""
}
