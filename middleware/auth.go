package middleware

import (
	"context"
	"net/http"
	"strings"

	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userKey = "user"

// IdentityResolver maps a verified token identity to the local account.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, identity *utils.Identity) (*models.User, error)
}

// JWTAuthMiddleware verifies the bearer token and stores the resolved user
// on the context.
func JWTAuthMiddleware(secret []byte, users IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}

		identity, err := utils.ExtractIdentity(tokenString, secret)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		user, err := users.ResolveIdentity(c.Request.Context(), identity)
		if err != nil {
			utils.GetLogger().Error("failed to resolve identity", zap.String("externalId", identity.ExternalID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Authentication error", "")
			return
		}

		c.Set(userKey, user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// CurrentUser returns the user set by JWTAuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
