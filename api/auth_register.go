package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type registerBody struct {
	Username string `form:"nombre_usuario" json:"nombre_usuario"`
	Password string `form:"contraseña" json:"contraseña"`

	// "TRUE" marks a student, anything else security staff. Kept as a
	// string because that is what the registration form submits
	UserType string `form:"tipo_usuario" json:"tipo_usuario"`

	FirstName       string `form:"nombres" json:"nombres"`
	PaternalSurname string `form:"apellido_paterno" json:"apellido_paterno"`
	MaternalSurname string `form:"apellido_materno" json:"apellido_materno"`

	// Fallback for forms that still submit a single full-name field
	FullName string `form:"nombre_completo" json:"nombre_completo"`

	Email         string `form:"correo_electronico" json:"correo_electronico"`
	Phone         string `form:"telefono" json:"telefono"`
	ControlNumber string `form:"rfc_num_control" json:"rfc_num_control"`
	Program       string `form:"carrera" json:"carrera"`
}

// RegisterPage describes the registration form
func (a *API) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"titulo": "EstacionaTec - Registro",
		"action": "/registro_usuario",
		"fields": []string{
			"nombre_usuario", "contraseña", "tipo_usuario",
			"nombres", "apellido_paterno", "apellido_materno",
			"correo_electronico", "telefono", "rfc_num_control", "carrera",
		},
	})
}

func (a *API) Register(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Username == "" || data.ControlNumber == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "nombre_usuario and rfc_num_control are required",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	first, paternal, maternal := data.FirstName, data.PaternalSurname, data.MaternalSurname
	if first == "" && data.FullName != "" {
		var err error

		first, paternal, maternal, err = validators.SplitFullName(data.FullName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	if first == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "nombres can't be empty",
			"requestID": requestID,
		})
		return
	}

	hash, err := a.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Self-registration only hands out the two regular roles. The admin
	// account exists solely through the startup bootstrap
	role := model.RoleStaff
	var program *string

	if data.UserType == "TRUE" {
		role = model.RoleStudent

		if data.Program != "" {
			program = &data.Program
		}
	}

	user := model.User{
		Username:        data.Username,
		PasswordHash:    hash,
		Role:            role,
		FirstName:       first,
		PaternalSurname: paternal,
		MaternalSurname: maternal,
		Email:           data.Email,
		Phone:           data.Phone,
		ControlNumber:   data.ControlNumber,
		Program:         program,
		Active:          true,
		RegisteredAt:    time.Now().UTC(),
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "An account with this username, email or control number already exists",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userID":   user.ID,
		"redirect": "/",
	})
}
