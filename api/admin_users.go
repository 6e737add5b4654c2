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

// adminUserForm is the admin panel's view of a user. Every field is a
// pointer so an absent field can be told apart from an explicit zero value.
// One password contract for both create and edit: non-blank replaces the
// stored hash with a new hash, blank or absent keeps it
type adminUserForm struct {
	Username        *string `json:"nombre_usuario"`
	Password        *string `json:"contraseña"`
	Role            *string `json:"rol"`
	FirstName       *string `json:"nombres"`
	PaternalSurname *string `json:"apellido_paterno"`
	MaternalSurname *string `json:"apellido_materno"`
	Email           *string `json:"correo_electronico"`
	Phone           *string `json:"telefono"`
	ControlNumber   *string `json:"rfc_o_num_control"`
	Program         *string `json:"carrera"`
	Active          *bool   `json:"esta_activo"`
}

func (f *adminUserForm) apply(u *model.User) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&u.Username, f.Username)
	set(&u.Role, f.Role)
	set(&u.FirstName, f.FirstName)
	set(&u.PaternalSurname, f.PaternalSurname)
	set(&u.MaternalSurname, f.MaternalSurname)
	set(&u.Email, f.Email)
	set(&u.Phone, f.Phone)
	set(&u.ControlNumber, f.ControlNumber)

	if f.Program != nil {
		u.Program = f.Program
	}

	if f.Active != nil {
		u.Active = *f.Active
	}
}

func validRole(r string) bool {
	return r == model.RoleAdmin || r == model.RoleStudent || r == model.RoleStaff
}

func (a *API) adminUserCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var form adminUserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if form.Username == nil || form.Email == nil || form.ControlNumber == nil || form.Role == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "nombre_usuario, correo_electronico, rfc_o_num_control and rol are required",
			"requestID": requestID,
		})
		return
	}

	if !validRole(*form.Role) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "rol must be admin, student or staff",
			"requestID": requestID,
		})
		return
	}

	if form.Password == nil || *form.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "contraseña is required when creating a user",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(*form.Password); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	hash, err := a.Argon.GenerateFromPassword(*form.Password)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user := model.User{
		PasswordHash: hash,
		Active:       true,
		RegisteredAt: time.Now().UTC(),
	}
	form.apply(&user)

	if err := a.DB.Create(&user).Error; err != nil {
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

	c.JSON(http.StatusCreated, user)
}

func (a *API) adminUserUpdate(c *gin.Context, id uint) {
	requestID := c.MustGet("requestID").(string)

	var form adminUserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if form.Role != nil && !validRole(*form.Role) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "rol must be admin, student or staff",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	err := a.DB.Where("id = ?", id).First(&user).Error
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

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	form.apply(&user)

	if form.Password != nil && *form.Password != "" {
		if err := validators.PasswordValidator(*form.Password); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		hash, err := a.Argon.GenerateFromPassword(*form.Password)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		user.PasswordHash = hash
	}

	if err := a.DB.Save(&user).Error; err != nil {
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

		zap.L().Error("Failed to update user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
