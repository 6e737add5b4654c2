package api

import (
	"net/http"

	"github.com/alisontirado/estacionatec/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const placeholderUserPhoto = "/static/placeholder_user.png"

// Profile returns the caller's own account. The password hash never
// serializes (json:"-" on the model)
func (a *API) Profile(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var user model.User

	err := a.DB.
		Where("id = ?", userID).
		First(&user).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"titulo":   "Mi Perfil",
		"usuario":  user,
		"foto_url": placeholderUserPhoto,
	})
}
