package api

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/alisontirado/estacionatec/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The admin panel is generic CRUD over every entity in the system, keyed by
// the Spanish table names the frontend uses
type entityDef struct {
	one  func() any
	list func() any
}

var adminEntities = map[string]entityDef{
	"usuarios": {
		one:  func() any { return &model.User{} },
		list: func() any { return &[]model.User{} },
	},
	"vehiculos": {
		one:  func() any { return &model.Vehicle{} },
		list: func() any { return &[]model.Vehicle{} },
	},
	"pagos": {
		one:  func() any { return &model.Payment{} },
		list: func() any { return &[]model.Payment{} },
	},
	"codigos_qr": {
		one:  func() any { return &model.QRCode{} },
		list: func() any { return &[]model.QRCode{} },
	},
	"registro_acceso": {
		one:  func() any { return &model.AccessLog{} },
		list: func() any { return &[]model.AccessLog{} },
	},
}

func (a *API) adminEntity(c *gin.Context) (entityDef, bool) {
	requestID := c.MustGet("requestID").(string)

	def, ok := adminEntities[c.Param("entity")]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Unknown entity",
			"requestID": requestID,
		})
		return entityDef{}, false
	}

	return def, true
}

func (a *API) adminID(c *gin.Context) (uint, bool) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid id",
			"requestID": requestID,
		})
		return 0, false
	}

	return uint(id), true
}

func (a *API) AdminList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	def, ok := a.adminEntity(c)
	if !ok {
		return
	}

	list := def.list()

	err := a.DB.
		Order("id").
		Limit(500).
		Find(list).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list records", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, list)
}

func (a *API) AdminGet(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	def, ok := a.adminEntity(c)
	if !ok {
		return
	}

	id, ok := a.adminID(c)
	if !ok {
		return
	}

	record := def.one()

	err := a.DB.Where("id = ?", id).First(record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Record not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, record)
}

func (a *API) AdminCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	def, ok := a.adminEntity(c)
	if !ok {
		return
	}

	// Users carry the optional-password contract, everything else is a
	// plain bind-and-insert
	if c.Param("entity") == "usuarios" {
		a.adminUserCreate(c)
		return
	}

	record := def.one()

	if err := c.ShouldBindJSON(record); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := a.DB.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "A record with these unique fields already exists",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (a *API) AdminUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	def, ok := a.adminEntity(c)
	if !ok {
		return
	}

	id, ok := a.adminID(c)
	if !ok {
		return
	}

	if c.Param("entity") == "usuarios" {
		a.adminUserUpdate(c, id)
		return
	}

	record := def.one()

	err := a.DB.Where("id = ?", id).First(record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Record not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Absent fields keep their stored values
	if err := c.ShouldBindJSON(record); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	// The body can't move a record to another id
	reflect.ValueOf(record).Elem().FieldByName("ID").SetUint(uint64(id))

	err = a.DB.Save(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "A record with these unique fields already exists",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, record)
}

func (a *API) AdminDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	def, ok := a.adminEntity(c)
	if !ok {
		return
	}

	id, ok := a.adminID(c)
	if !ok {
		return
	}

	res := a.DB.Where("id = ?", id).Delete(def.one())
	if res.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete record", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Record not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
