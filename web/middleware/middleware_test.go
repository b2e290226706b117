package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw)
	engine.GET("/videos", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func TestDomainValidator(t *testing.T) {
	engine := newTestEngine(DomainValidatorMiddleware("quips.example.com"))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Host = "quips.example.com:8002"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Host = "evil.example.com"
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRedirectLegacyQuipPaths(t *testing.T) {
	engine := newTestEngine(RedirectMiddleware("/"))

	req := httptest.NewRequest(http.MethodGet, "/api/quips/abc", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/videos/abc", w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/quips", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/videos", w.Header().Get("Location"))
}

func TestRedirectKeepsQueryString(t *testing.T) {
	engine := newTestEngine(RedirectMiddleware("/"))

	req := httptest.NewRequest(http.MethodGet, "/api/quips?page=2&sort_by=views", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/videos?page=2&sort_by=views", w.Header().Get("Location"))
}

func TestCORSHeadersAndPreflight(t *testing.T) {
	engine := newTestEngine(CORSMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/videos", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
