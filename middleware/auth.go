// Package middleware contains any custom middleware used in the app
package middleware

import (
	"net/http"

	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewAuthMiddleware validates the auth_token session cookie once per request
// and stores the authenticated identity in the context as userID and role.
// Page routes pass redirectToLogin so an unauthenticated browser lands back
// on the login form instead of getting a JSON error
func NewAuthMiddleware(d *gorm.DB, redirectToLogin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		reject := func(status int, msg string) {
			if redirectToLogin {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(status, gin.H{
				"error":     msg,
				"requestID": requestID,
			})
		}

		tokenStr, err := c.Cookie("auth_token")
		if err != nil {
			reject(http.StatusUnauthorized, "No auth_token cookie")
			return
		}

		claims, err := security.ParseSessionToken(tokenStr)
		if err != nil {
			if err == security.ErrTokenExpired {
				reject(http.StatusUnauthorized, "token_expired")
				return
			}

			reject(http.StatusUnauthorized, "token_invalid")
			return
		}

		// The row is loaded again on every request so deleted or deactivated
		// accounts lose access immediately, not when their token expires
		var user model.User
		err = d.Where("id = ?", claims.UserID).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				reject(http.StatusUnauthorized, "user_not_found")
				return
			}

			reject(http.StatusInternalServerError, "internal_server_error")

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !user.Active {
			reject(http.StatusUnauthorized, "account_deactivated")
			return
		}

		c.Set("userID", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireRole restricts a route to sessions whose user carries the given
// role. Must be mounted after NewAuthMiddleware
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if c.GetString("role") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "insufficient_permissions",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
