package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Logout drops the whole session by expiring both cookies
func (a *API) Logout(c *gin.Context) {
	ssl := viper.GetBool("host.ssl_enabled")

	c.SetCookie("auth_token", "", -1, "/", "", ssl, true)
	c.SetCookie("logged_in", "", -1, "/", "", ssl, false)

	c.Redirect(http.StatusFound, "/")
}
