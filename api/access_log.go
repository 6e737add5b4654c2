package api

import (
	"net/http"
	"time"

	"github.com/alisontirado/estacionatec/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type accessLogBody struct {
	UserID uint   `form:"usuario_id" json:"usuario_id"`
	Type   string `form:"tipo_acceso" json:"tipo_acceso"`
}

// AccessLogCreate appends an entry/exit record after a successful scan.
// Staff only; rows are never updated or deleted outside the admin panel
func (a *API) AccessLogCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data accessLogBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Type != model.AccessTypeEntry && data.Type != model.AccessTypeExit {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "tipo_acceso must be entrada or salida",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := a.DB.Where("id = ?", data.UserID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	log := model.AccessLog{
		UserID:    user.ID,
		Type:      data.Type,
		Timestamp: time.Now().UTC(),
	}

	if err := a.DB.Create(&log).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create access log", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, log)
}
