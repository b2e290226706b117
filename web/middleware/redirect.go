package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RedirectMiddleware maps legacy paths onto the current API layout. The
// upstream quips feed exposed records under /api/quips; keep those URLs
// working.
func RedirectMiddleware(basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Order matters: specific paths first.
		redirects := []struct {
			from string
			to   string
		}{
			{"api/quips", "videos"},
			{"quips", "videos"},
		}

		path := c.Request.URL.Path
		for _, r := range redirects {
			from, to := basePath+r.from, basePath+r.to

			if strings.HasPrefix(path, from) {
				newPath := to + path[len(from):]
				if c.Request.URL.RawQuery != "" {
					newPath += "?" + c.Request.URL.RawQuery
				}

				c.Redirect(http.StatusMovedPermanently, newPath)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
