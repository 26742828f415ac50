package middleware

import "github.com/gin-gonic/gin"

// Context keys populated by ClientInfo.
const (
	CtxClientIP  = "client_ip"
	CtxUserAgent = "user_agent"
)

// ClientInfo extracts the caller's address and user agent once per
// request so handlers and audit records agree on the values.
func ClientInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxClientIP, c.ClientIP())
		c.Set(CtxUserAgent, c.Request.UserAgent())
		c.Next()
	}
}
