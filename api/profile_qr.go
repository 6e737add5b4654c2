package api

import (
	"net/http"
	"time"

	"github.com/alisontirado/estacionatec/model"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const qrCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// QRFetch returns the caller's parking QR code
func (a *API) QRFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var qr model.QRCode

	err := a.DB.
		Where("user_id = ?", userID).
		First(&qr).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "No QR code generated yet",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch QR code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, qr)
}

// QRGenerate creates the caller's QR code, replacing any previous one so
// the user-to-code relation stays 1:1
func (a *API) QRGenerate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	payload, err := gonanoid.Generate(qrCharset, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate QR payload", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	qr := model.QRCode{
		UserID:      userID,
		Data:        payload,
		GeneratedAt: time.Now().UTC(),
		Active:      true,
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.QRCode{}).Error; err != nil {
			return err
		}

		return tx.Create(&qr).Error
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save QR code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, qr)
}
