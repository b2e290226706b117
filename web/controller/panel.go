package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xlzd/gotp"

	"quipvid/config"
	"quipvid/logger"
	"quipvid/web/entity"
	"quipvid/web/service"
)

// PanelController exposes the session-guarded operator endpoints.
type PanelController struct {
	BaseController

	serverService  *service.ServerService
	ingestService  *service.IngestService
	settingService *service.SettingService
	userService    *service.UserService
}

func NewPanelController(
	g *gin.RouterGroup,
	serverService *service.ServerService,
	ingestService *service.IngestService,
	settingService *service.SettingService,
	userService *service.UserService,
) *PanelController {
	a := &PanelController{
		serverService:  serverService,
		ingestService:  ingestService,
		settingService: settingService,
		userService:    userService,
	}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)

	g.GET("/", a.index)

	api := g.Group("/api")
	api.POST("/status", a.status)
	api.POST("/logs/:count", a.getLogs)
	api.POST("/ingest", a.ingest)
	api.POST("/settings", a.getAllSetting)
	api.POST("/settings/update", a.updateAllSetting)
	api.POST("/user/update", a.updateUser)
	api.POST("/twofactor/enable", a.enableTwoFactor)
	api.POST("/twofactor/disable", a.disableTwoFactor)
}

func (a *PanelController) index(c *gin.Context) {
	c.HTML(http.StatusOK, "panel.html", gin.H{
		"base_path": c.GetString("base_path"),
		"version":   config.GetVersion(),
	})
}

func (a *PanelController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *PanelController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count < 1 {
		count = 10
	}
	level := c.DefaultPostForm("level", "info")
	jsonObj(c, logger.GetLogs(count, level), nil)
}

func (a *PanelController) ingest(c *gin.Context) {
	result, err := a.ingestService.Sync()
	jsonMsgObj(c, "ingest", result, err)
}

func (a *PanelController) getAllSetting(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	jsonObj(c, allSetting, err)
}

func (a *PanelController) updateAllSetting(c *gin.Context) {
	allSetting := &entity.AllSetting{}
	if err := c.ShouldBind(allSetting); err != nil {
		jsonMsg(c, "update settings", err)
		return
	}
	err := a.settingService.UpdateAllSetting(allSetting)
	jsonMsg(c, "update settings", err)
}

// enableTwoFactor issues a fresh TOTP secret and returns the otpauth URI
// for authenticator apps.
func (a *PanelController) enableTwoFactor(c *gin.Context) {
	secret, err := a.settingService.EnableTwoFactor()
	if err != nil {
		jsonMsg(c, "enable two-factor auth", err)
		return
	}
	user, err := a.userService.GetFirstUser()
	if err != nil {
		jsonMsg(c, "enable two-factor auth", err)
		return
	}
	uri := gotp.NewDefaultTOTP(secret).ProvisioningUri(user.Username, config.GetName())
	jsonObj(c, gin.H{
		"secret":          secret,
		"provisioningUri": uri,
	}, nil)
}

func (a *PanelController) disableTwoFactor(c *gin.Context) {
	jsonMsg(c, "disable two-factor auth", a.settingService.DisableTwoFactor())
}

type updateUserForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (a *PanelController) updateUser(c *gin.Context) {
	var form updateUserForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "update user", err)
		return
	}
	err := a.userService.UpdateFirstUser(form.Username, form.Password)
	jsonMsg(c, "update user", err)
}
