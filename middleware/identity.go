package middleware

import (
	"skiply/models"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key holding the caller's models.Identity.
const IdentityKey = "identity"

// GetIdentity returns the identity set by JWTAuthUserMiddleware.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}
