package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quipvid/database"
	"quipvid/database/repository"
	"quipvid/web/entity"
	"quipvid/web/service"
)

func setupPanelRouter(t *testing.T) *gin.Engine {
	t.Helper()
	err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions("quipvid", cookie.NewStore([]byte("test-secret"))))
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", "/")
	})

	settingService := service.NewSettingService(repository.NewSettingRepository(database.GetDB()))
	userService := service.NewUserService(repository.NewUserRepository(database.GetDB()), settingService)
	videoService := service.NewVideoService(repository.NewVideoRepository(database.GetDB()), settingService)
	ingestService := service.NewIngestService(repository.NewVideoRepository(database.GetDB()), settingService)
	serverService := service.NewServerService(videoService)

	g := engine.Group("/")
	NewIndexController(g, settingService, userService)
	NewPanelController(g.Group("panel"), serverService, ingestService, settingService, userService)
	return engine
}

func login(t *testing.T, engine *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	form := "username=" + username + "&password=" + password
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func TestLoginSuccessAndPanelAccess(t *testing.T) {
	engine := setupPanelRouter(t)

	cookies := login(t, engine, "admin", "admin")
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodPost, "/panel/api/status", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var msg entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.True(t, msg.Success)
}

func TestLoginWrongPassword(t *testing.T) {
	engine := setupPanelRouter(t)

	form := "username=admin&password=nope"
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var msg entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.False(t, msg.Success)
}

func TestPanelAPIStealth404WhenUnauthenticated(t *testing.T) {
	engine := setupPanelRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/panel/api/status", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var msg entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.False(t, msg.Success)
	assert.Equal(t, "404 page not found", msg.Msg)
}

func TestPanelLogsEndpoint(t *testing.T) {
	engine := setupPanelRouter(t)
	cookies := login(t, engine, "admin", "admin")

	req := httptest.NewRequest(http.MethodPost, "/panel/api/logs/5", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var msg entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.True(t, msg.Success)
}

func TestTwoFactorEnableEndpoint(t *testing.T) {
	engine := setupPanelRouter(t)
	cookies := login(t, engine, "admin", "admin")

	req := httptest.NewRequest(http.MethodPost, "/panel/api/twofactor/enable", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var msg entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	require.True(t, msg.Success)

	obj, ok := msg.Obj.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, obj["secret"])
	assert.Contains(t, obj["provisioningUri"], "otpauth://totp/")

	// a fresh login without a code must now fail
	form := "username=admin&password=admin"
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.False(t, msg.Success)
}

func TestUpdateUserEndpoint(t *testing.T) {
	engine := setupPanelRouter(t)
	cookies := login(t, engine, "admin", "admin")

	form := "username=operator&password=changed"
	req := httptest.NewRequest(http.MethodPost, "/panel/api/user/update", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var msg entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.True(t, msg.Success)

	login(t, engine, "operator", "changed")
}
