package api

import (
	"net/http"

	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const placeholderCarPhoto = "/static/placeholder_car.png"

// VehicleLookup answers the scanner's plate query: the vehicle, its owner's
// standing and the photos to show at the gate. Pure read
func (a *API) VehicleLookup(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	plate := validators.NormalizePlate(c.Param("placa"))
	if plate == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No plate provided",
			"requestID": requestID,
		})
		return
	}

	var vehicle model.Vehicle

	err := a.DB.
		Preload("Owner").
		Where("placa = ?", plate).
		First(&vehicle).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": "Vehículo no encontrado",
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up vehicle", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if vehicle.Owner == nil || !vehicle.Owner.Active {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Vehículo Registrado pero Usuario Inactivo",
		})
		return
	}

	vehiclePhoto := vehicle.PhotoKey
	if vehiclePhoto == "" {
		vehiclePhoto = placeholderCarPhoto
	}

	c.JSON(http.StatusOK, gin.H{
		"placas":           vehicle.Plate,
		"modelo":           vehicle.Type,
		"estado":           "Activo",
		"imagen_vehiculo":  vehiclePhoto,
		"imagen_conductor": placeholderUserPhoto,
	})
}
