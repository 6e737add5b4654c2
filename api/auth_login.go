package api

import (
	"net/http"

	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/security"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Username string `form:"nombre_usuario" json:"nombre_usuario"`
	Password string `form:"contraseña" json:"contraseña"`
}

// Frontend home for each role after a successful login
var homeFor = map[string]string{
	model.RoleAdmin:   "/admin/usuarios",
	model.RoleStudent: "/home/estudiantes",
	model.RoleStaff:   "/home/vigilancia",
}

// LoginPage describes the login form so the frontend knows what to submit
func (a *API) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"titulo": "EstacionaTec - Inicio de Sesión",
		"action": "/perfil_usuario",
		"fields": []string{"nombre_usuario", "contraseña"},
	})
}

func (a *API) Login(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Username == "" || data.Password == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := a.DB.Where("username = ?", data.Username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		}

		// Same answer whether the account exists or not
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	ok, err := a.Argon.VerifyPassword(data.Password, user.PasswordHash)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Deactivated accounts get the same answer as bad credentials
	if !ok || !user.Active {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	authToken, err := security.MakeSessionToken(user.ID, user.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	maxAge := int(security.SessionTTL.Seconds())
	ssl := viper.GetBool("host.ssl_enabled")

	c.SetCookie("auth_token", authToken, maxAge, "/", "", ssl, true)
	c.SetCookie("logged_in", "1", maxAge, "/", "", ssl, false)
	c.JSON(http.StatusOK, gin.H{
		"userID":   user.ID,
		"rol":      user.Role,
		"redirect": homeFor[user.Role],
	})
}
