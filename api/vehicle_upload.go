package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/util"
	"github.com/alisontirado/estacionatec/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VehicleUploadPage returns the upload form descriptor along with the
// caller's already registered vehicles
func (a *API) VehicleUploadPage(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var vehicles []model.Vehicle

	err := a.DB.
		Where("user_id = ?", userID).
		Find(&vehicles).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch vehicles", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"titulo":    "Carga de Vehículo",
		"action":    "/carga/vehiculo",
		"fields":    []string{"placa", "tipo_vehiculo", "foto_vehiculo", "tarjeta_circulacion"},
		"vehiculos": vehicles,
	})
}

// VehicleUpload registers a vehicle for the caller. The photo and the
// registration card are optional multipart files
func (a *API) VehicleUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	plate := validators.NormalizePlate(c.PostForm("placa"))
	if err := validators.PlateValidator(plate); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	vehicleType := c.PostForm("tipo_vehiculo")
	if vehicleType == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "tipo_vehiculo can't be empty",
			"requestID": requestID,
		})
		return
	}

	vehicle := model.Vehicle{
		UserID: userID,
		Type:   vehicleType,
		Plate:  plate,
	}

	var saved []string

	for field, dest := range map[string]*string{
		"foto_vehiculo":       &vehicle.PhotoKey,
		"tarjeta_circulacion": &vehicle.RegistrationCardKey,
	} {
		fh, err := c.FormFile(field)
		if err != nil {
			if err == http.ErrMissingFile {
				continue
			}

			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid multipart form",
				"requestID": requestID,
			})
			return
		}

		key, err := a.saveUpload(c, fh, field)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to store upload", zap.Error(err), zap.String("requestID", requestID))
			a.cleanupUploads(c, saved)
			return
		}

		*dest = key
		saved = append(saved, key)
	}

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&vehicle).Error
	})
	if err != nil {
		a.cleanupUploads(c, saved)

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "This plate is already registered",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create vehicle", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (a *API) saveUpload(c *gin.Context, fh *multipart.FileHeader, kind string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := kind + "_" + util.RandStr(10) + path.Ext(fh.Filename)

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := a.Store.Save(c.Request.Context(), key, contentType, f, fh.Size); err != nil {
		return "", err
	}

	return key, nil
}

// cleanupUploads removes objects that were stored before a request failed
func (a *API) cleanupUploads(c *gin.Context, keys []string) {
	for _, key := range keys {
		if err := a.Store.Delete(c.Request.Context(), key); err != nil {
			zap.L().Error("Failed to cleanup after failed upload", zap.Error(err), zap.String("key", key))
		}
	}
}
