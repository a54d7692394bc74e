package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/bookwise/internal/auth"
	"github.com/yoockh/bookwise/internal/utils"
)

// RequireRole must run after JWTAuth. Roles compare case-insensitively.
func RequireRole(allowed ...string) gin.HandlerFunc {
	allow := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			allow[a] = true
		}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString("role")))
		if !allow[role] {
			abort(c, http.StatusForbidden, utils.CodeForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

// RequireAdmin guards the staff dashboard endpoints.
func RequireAdmin() gin.HandlerFunc { return RequireRole(auth.RoleAdmin) }
