package middleware

import (
	"net"
	"net/http"
	"strings"

	"quipvid/logger"

	"github.com/gin-gonic/gin"
)

// DomainValidatorMiddleware rejects requests whose Host does not match the
// configured domain. Used when the service sits behind a known name.
func DomainValidatorMiddleware(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host

		cleanHost := host
		if strings.Contains(host, ":") {
			if strings.HasPrefix(host, "[") && strings.Contains(host, "]:") {
				// Bracketed IPv6 with port.
				if endBracket := strings.Index(host, "]"); endBracket != -1 {
					cleanHost = host[1:endBracket]
				}
			} else {
				var err error
				cleanHost, _, err = net.SplitHostPort(host)
				if err != nil {
					cleanHost = host
				}
			}
		}

		if strings.Contains(cleanHost, ":") && !strings.HasPrefix(cleanHost, "[") {
			cleanHost = "[" + cleanHost + "]"
		}

		if !strings.EqualFold(cleanHost, domain) {
			logger.Warningf("Domain validation failed: expected %s, got %s from %s",
				domain, cleanHost, c.ClientIP())
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}
