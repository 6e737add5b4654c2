package api

import (
	"net/http"

	"github.com/alisontirado/estacionatec/model"
	"github.com/gin-gonic/gin"
)

// Scanner is the QR scanner page for security staff. Students get bounced
// to their own profile instead of an error page
func (a *API) Scanner(c *gin.Context) {
	if c.GetString("role") == model.RoleStudent {
		c.Redirect(http.StatusFound, "/miperfil")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"titulo": "Scanner QR",
		"lookup": "/obtener_info/:placa",
		"report": "/registro_acceso",
	})
}
