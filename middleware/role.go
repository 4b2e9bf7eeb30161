package middleware

import (
	"net/http"

	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the authenticated user has
// one of roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Access denied", "requires role "+rolesLabel(roles))
	}
}

func rolesLabel(roles []models.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += " or "
		}
		out += string(r)
	}
	return out
}
