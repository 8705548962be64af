package middleware

import (
	"net/http"
	"strings"

	"taskflow/internal/auth"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the gin context key under which the authenticated user's
// UUID is stored.
const UserIDKey = "userID"

// JWTAuthMiddleware resolves the bearer credential on every request. Any
// failure — missing header, bad scheme, invalid or expired token, malformed
// user ID, or a user that no longer exists — aborts with 401 before the
// request reaches a handler. The resolution is read-only; nothing in the
// task store is touched.
//
// When users is nil the existence check is skipped (used by tests that only
// exercise token handling).
func JWTAuthMiddleware(jwtSecret string, users repository.UserRepositoryInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		rawUserID, err := auth.ParseToken(parts[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			return
		}

		if users != nil {
			user, err := users.GetByID(c.Request.Context(), userID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
				return
			}
			// A valid token for a deleted account is still unauthorized.
			if user == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token. User not found"})
				return
			}
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
