package api

import (
	"net/http"

	"github.com/alisontirado/estacionatec/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHistory returns all of the caller's payments, newest first
func (a *API) PaymentHistory(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var payments []model.Payment

	err := a.DB.
		Where("user_id = ?", userID).
		Order("fecha_pago desc").
		Find(&payments).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch payments", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"titulo": "Historial de Pagos",
		"pagos":  payments,
	})
}
