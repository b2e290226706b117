package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quipvid/web/session"
)

type BaseController struct{}

// checkLogin guards the panel routes. Unauthenticated requests to API
// paths get a plain 404 so the panel surface is not probeable.
func (a *BaseController) checkLogin(c *gin.Context) {
	if session.IsLogin(c) {
		c.Next()
		return
	}

	if strings.Contains(c.Request.RequestURI, "/api/") {
		pureJsonMsg(c, http.StatusNotFound, false, "404 page not found")
		c.Abort()
		return
	}

	if isAjax(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, "login required")
	} else {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
	}
	c.Abort()
}
