package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP resolves the client address once per request and stores it under
// "real_ip" for the rate limiters. Proxy headers are consulted in order:
// CF-Connecting-IP, then the left-most X-Forwarded-For entry, then the
// socket address.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", resolveClientIP(c))
		c.Next()
	}
}

func resolveClientIP(c *gin.Context) string {
	candidates := []string{c.GetHeader("CF-Connecting-IP")}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		candidates = append(candidates, strings.SplitN(xff, ",", 2)[0])
	}
	for _, cand := range candidates {
		cand = strings.TrimSpace(cand)
		if ip := net.ParseIP(cand); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
