package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userRepo "skiply/database/repository/user"
	"skiply/models"
	"skiply/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserLookup is the part of the user store the auth middleware needs.
type UserLookup interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// JWTAuthUserMiddleware validates the bearer token, resolves the user and stores
// the caller's identity in the context. Identities are cached in Redis under the
// token hash; a nil cache goes straight to the database.
func JWTAuthUserMiddleware(users UserLookup, cache *redis.Client, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Authorization token missing", "")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Authorization token missing", "")
			return
		}

		userID, err := utils.ExtractIDFromToken(secret, tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid JWT token", "")
			return
		}
		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid JWT token", "")
			return
		}

		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)
		if cache != nil {
			raw, err := cache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil:
				var identity models.Identity
				if jsonErr := json.Unmarshal([]byte(raw), &identity); jsonErr == nil && identity.UserID == oid {
					c.Set(IdentityKey, identity)
					c.Next()
					return
				}
			case !errors.Is(err, redis.Nil):
				logger.Warn("Error reading auth cache, falling back to DB lookup", zap.Error(err))
			}
		}

		user, err := users.GetByID(ctx, oid)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				utils.JSONError(c, http.StatusUnauthorized, "User not found", "")
				return
			}
			logger.Error("Failed to load user for token", zap.String("userId", userID), zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, invalid token", "")
			return
		}

		identity := models.Identity{UserID: user.ID, Role: user.Role, Name: user.Name}
		if identity.Role == "" {
			identity.Role = models.RoleUser
		}

		if cache != nil {
			if payload, err := json.Marshal(identity); err == nil {
				if err := cache.Set(ctx, cacheKey, payload, utils.AuthCacheTTL).Err(); err != nil {
					logger.Warn("Failed to cache identity", zap.Error(err))
				}
			}
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}
