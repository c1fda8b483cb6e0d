package middleware

import (
	"net/http"

	"skiply/models"
	"skiply/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets only callers with the given role through. It must run after
// JWTAuthUserMiddleware.
func RequireRole(role, denied string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized", "")
			return
		}
		if identity.Role != role {
			utils.JSONError(c, http.StatusForbidden, denied, "")
			return
		}
		c.Next()
	}
}

func BusinessOnly() gin.HandlerFunc {
	return RequireRole(models.RoleBusiness, "Access denied: Business users only")
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin, "Access denied: Admins only")
}
