package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quipvid/logger"
	"quipvid/web/entity"
)

func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
	} else {
		m.Success = false
		m.Msg = msg + " failed: " + err.Error()
		logger.Warning(msg+" failed:", err)
	}
	c.JSON(http.StatusOK, m)
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// jsonDetail writes the public API error body, e.g. {"detail": "Video not found"}.
func jsonDetail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, entity.Detail{
		Detail: detail,
	})
}

func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		return strings.TrimSpace(strings.Split(value, ",")[0])
	}
	addr := c.Request.RemoteAddr
	if ip, _, err := net.SplitHostPort(addr); err == nil {
		return ip
	}
	return addr
}
