package controller

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"quipvid/logger"
	"quipvid/web/service"
	"quipvid/web/session"
)

type LoginForm struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

type IndexController struct {
	BaseController

	settingService *service.SettingService
	userService    *service.UserService
}

func NewIndexController(g *gin.RouterGroup, settingService *service.SettingService, userService *service.UserService) *IndexController {
	a := &IndexController{
		settingService: settingService,
		userService:    userService,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
	g.POST("/getTwoFactorEnable", a.getTwoFactorEnable)
}

func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "panel/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"base_path": c.GetString("base_path"),
	})
}

func (a *IndexController) login(c *gin.Context) {
	limiter := service.GetLoginLimiter()
	ip := getRemoteIp(c)
	if limiter.IsBlocked(ip) {
		pureJsonMsg(c, http.StatusOK, false, "too many failed attempts, try again later")
		return
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid login form")
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, "username can not be empty")
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, "password can not be empty")
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password, form.TwoFactorCode)
	if user == nil {
		limiter.RecordFailure(ip)
		logger.Warningf("wrong username or password, username: %q, ip: %q", form.Username, ip)
		pureJsonMsg(c, http.StatusOK, false, "wrong username or password")
		return
	}

	limiter.RecordSuccess(ip)

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("get session max age failed:", err)
	}
	if sessionMaxAge > 0 {
		session.SetMaxAge(c, sessionMaxAge*60)
	}
	session.SetLoginUser(c, user)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("save session failed:", err)
		return
	}

	logger.Infof("%s logged in, ip: %s", form.Username, ip)
	jsonMsg(c, "login", nil)
}

func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out", user.Username)
	}
	session.ClearSession(c)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("save session after clearing failed:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}

func (a *IndexController) getTwoFactorEnable(c *gin.Context) {
	enable, err := a.settingService.GetTwoFactorEnable()
	jsonObj(c, enable, err)
}
